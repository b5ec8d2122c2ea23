package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, recent transactions and spending by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd.Context(), func(a *app) error {
				v := viewmodel.Build(a.engine.Snapshot(), model.NoFilter(), nil, viewmodel.PanelDashboard, a.cfg.Currency)
				out := cmd.OutOrStdout()

				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Hello, %s", v.User.Name)))
				if err := cli.PrintSummary(out, v.Summary); err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.FormatTitle("Recent transactions"))
				if err := cli.PrintTable(out, v.Recent); err != nil {
					return err
				}
				fmt.Fprintln(out)
				return cli.PrintChart(out, v.Chart)
			})
		},
	}
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and manage transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsAddCmd())
	cmd.AddCommand(transactionsEditCmd())
	cmd.AddCommand(transactionsDeleteCmd())
	cmd.AddCommand(transactionsTrashCmd())
	cmd.AddCommand(transactionsRestoreCmd())
	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Long: `List transactions. Narrow the list with --type (all, income, expense)
and --category (all or a category name).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typeFilter, _ := cmd.Flags().GetString("type")
			categoryFilter, _ := cmd.Flags().GetString("category")

			if typeFilter != model.FilterAll {
				if _, err := model.ParseTransactionType(typeFilter); err != nil {
					return common.NewValidationError("type", "Type must be all, income or expense.")
				}
			}

			return withUser(cmd.Context(), func(a *app) error {
				filter := model.Filter{Type: typeFilter, Category: categoryFilter}
				v := viewmodel.Build(a.engine.Snapshot(), filter, nil, viewmodel.PanelTransactions, a.cfg.Currency)
				return cli.PrintTable(cmd.OutOrStdout(), v.Table)
			})
		},
	}

	cmd.Flags().StringP("type", "t", model.FilterAll, "filter by type (all, income, expense)")
	cmd.Flags().StringP("category", "c", model.FilterAll, "filter by category")
	return cmd
}

func addTransactionFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "transaction title")
	cmd.Flags().String("amount", "", "amount, greater than 0")
	cmd.Flags().String("category", "", "category (default General)")
	cmd.Flags().String("type", "", "income or expense")
}

// draftFromFlags overlays the flags that were given on d and prompts for anything
// still missing when ask is true.
func draftFromFlags(cmd *cobra.Command, d model.Draft, ask bool) (model.Draft, error) {
	ctx := cmd.Context()
	p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	amount := ""
	if d.Amount.IsPositive() {
		amount = d.Amount.String()
	}
	kind := string(d.Type)
	if kind == "" {
		kind = string(model.TypeExpense)
	}

	fields := []struct {
		target *string
		flag   string
		label  string
	}{
		{&d.Title, "title", "Title"},
		{&amount, "amount", "Amount"},
		{&d.Category, "category", "Category"},
		{&kind, "type", "Type (income/expense)"},
	}
	for _, f := range fields {
		switch {
		case cmd.Flags().Changed(f.flag):
			*f.target, _ = cmd.Flags().GetString(f.flag)
		case ask:
			v, err := p.Ask(ctx, f.label, *f.target)
			if err != nil {
				return d, err
			}
			*f.target = v
		}
	}

	var err error
	if d.Amount, err = engine.ParseAmount(amount); err != nil {
		return d, err
	}
	if d.Type, err = model.ParseTransactionType(kind); err != nil {
		return d, common.NewValidationError("type", "Please choose income or expense.")
	}
	return d, nil
}

func transactionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Long: `Add a transaction. Fields not given as flags are prompted for unless
--no-input is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noInput, _ := cmd.Flags().GetBool("no-input")
			return withSession(cmd.Context(), func(a *app) error {
				d, err := draftFromFlags(cmd, model.Draft{}, !noInput)
				if err != nil {
					return err
				}
				err = a.engine.SaveTransaction(cmd.Context(), d)
				return reportChange(cmd.OutOrStdout(), err, fmt.Sprintf("Added %q", d.Title))
			})
		},
	}

	addTransactionFlags(cmd)
	cmd.Flags().Bool("no-input", false, "do not prompt for missing fields")
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("id", fmt.Sprintf("Invalid transaction id %q.", arg))
	}
	return id, nil
}

func transactionsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long:  `Edit a transaction. Only the fields given as flags change.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withUser(cmd.Context(), func(a *app) error {
				txns := a.engine.Snapshot().Transactions
				i := slices.IndexFunc(txns, func(t model.Transaction) bool { return t.ID == id })
				if i < 0 {
					return common.NewUserError(fmt.Sprintf("Transaction %d not found.", id), common.ErrNotFound)
				}

				d, err := draftFromFlags(cmd, model.DraftFrom(txns[i]), false)
				if err != nil {
					return err
				}
				err = a.engine.SaveTransaction(cmd.Context(), d)
				return reportChange(cmd.OutOrStdout(), err, fmt.Sprintf("Updated %q", d.Title))
			})
		},
	}

	addTransactionFlags(cmd)
	return cmd
}

func transactionsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a transaction to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")

			return withSession(cmd.Context(), func(a *app) error {
				var confirm engine.Confirmer = cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				if yes {
					confirm = engine.AlwaysConfirm
				}

				err := a.engine.DeleteTransaction(cmd.Context(), id, confirm)
				if errors.Is(err, common.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted"))
					return nil
				}
				return reportChange(cmd.OutOrStdout(), err, fmt.Sprintf("Moved transaction %d to the trash", id))
			})
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func transactionsTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash",
		Short: "List deleted transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(a *app) error {
				trash, err := a.engine.ListTrash(cmd.Context())
				if err != nil {
					return err
				}
				return cli.PrintTable(cmd.OutOrStdout(), viewmodel.TrashTable(trash, a.cfg.Currency))
			})
		},
	}
}

func transactionsRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a transaction from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withSession(cmd.Context(), func(a *app) error {
				_, err := a.engine.RestoreTransaction(cmd.Context(), id)
				return reportChange(cmd.OutOrStdout(), err, fmt.Sprintf("Restored transaction %d", id))
			})
		},
	}
}
