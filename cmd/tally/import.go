package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/ofx"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.
Credits become income and debits become expenses.

Examples:
  # Import a single statement
  tally import ~/Downloads/checking_jan.qfx

  # Preview every statement in a folder without creating anything
  tally import --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "preview the import without creating transactions")
	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// statement is one parsed file.
type statement struct {
	name     string
	accounts []string
	drafts   []model.Draft
}

func readStatement(ctx context.Context, parser *ofx.Parser, path string) (statement, error) {
	st := statement{name: filepath.Base(path)}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return st, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if st.drafts, err = parser.ParseFile(ctx, bytes.NewReader(data)); err != nil {
		return st, fmt.Errorf("%s: %w", st.name, err)
	}
	if st.accounts, err = parser.GetAccounts(ctx, bytes.NewReader(data)); err != nil {
		return st, fmt.Errorf("%s: %w", st.name, err)
	}
	return st, nil
}

func parseStatements(cmd *cobra.Command, files []string) ([]model.Draft, error) {
	parser := ofx.NewParser()
	var drafts []model.Draft

	for _, path := range files {
		st, err := readStatement(cmd.Context(), parser, path)
		if err != nil {
			return nil, err
		}

		line := fmt.Sprintf("  %s: %d transactions", st.name, len(st.drafts))
		if len(st.accounts) > 0 {
			line += fmt.Sprintf(" (account %s)", strings.Join(st.accounts, ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		drafts = append(drafts, st.drafts...)
	}
	return drafts, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatTitle("Reading statements"))
	drafts, err := parseStatements(cmd, files)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No transactions found"))
		return nil
	}

	return withSession(cmd.Context(), func(a *app) error {
		if dryRun {
			preview := make([]model.Transaction, 0, len(drafts))
			for _, d := range drafts {
				preview = append(preview, model.Transaction{Title: d.Title, Amount: d.Amount, Category: d.Category, Type: d.Type})
			}
			if err := cli.PrintTable(out, viewmodel.TransactionsTable(preview, a.cfg.Currency)); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be created", len(drafts))))
			return nil
		}

		interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
		ctx := interrupts.HandleInterrupts(cmd.Context(), "Transactions created before the interrupt were kept.")

		bar := progressbar.NewOptions(len(drafts),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(cmd.ErrOrStderr())
			}),
		)

		result, err := a.engine.ImportTransactions(ctx, drafts, func(done int) {
			_ = bar.Set(done)
		})
		for _, skip := range result.Skipped {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped %q: %s", drafts[skip.Index].Title, skip.Reason)))
		}
		if err != nil && !errors.Is(err, common.ErrRefreshFailed) {
			if result.Created > 0 {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d transactions were created before the failure", result.Created)))
			}
			return err
		}

		return reportChange(out, err, fmt.Sprintf("Imported %d of %d transactions", result.Created, len(drafts)))
	})
}
