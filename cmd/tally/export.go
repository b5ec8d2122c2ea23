package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your dashboard",
	}
	cmd.AddCommand(exportSheetsCmd())
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the dashboard to a Google Sheets spreadsheet",
		Long: `Write the summary, the spending breakdown and every transaction to a
Google Sheets spreadsheet.

Authenticate with a service account (sheets.service_account_path) or with an
OAuth client (sheets.client_id and sheets.client_secret). With an OAuth client,
run once with --authorize to grant access; the token is saved to
sheets.token_file. A new spreadsheet is created unless sheets.spreadsheet_id
is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			authorize, _ := cmd.Flags().GetBool("authorize")
			spreadsheetID, _ := cmd.Flags().GetString("spreadsheet-id")

			return withUser(cmd.Context(), func(a *app) error {
				cfg := sheets.FromSettings(a.cfg.Sheets)
				if spreadsheetID != "" {
					cfg.SpreadsheetID = spreadsheetID
				}

				if authorize {
					_, err := sheets.Authorize(cmd.Context(), cfg, func(url string) {
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Open this URL to grant access:"))
						fmt.Fprintln(cmd.OutOrStdout(), url)
					})
					if err != nil {
						return err
					}
				}

				writer, err := sheets.NewWriter(cmd.Context(), cfg, slog.Default())
				if err != nil {
					return err
				}

				report := sheets.NewReport(a.engine.Snapshot(), a.cfg.Currency, time.Now())
				url, err := writer.Write(cmd.Context(), report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported to "+url))
				return nil
			})
		},
	}

	cmd.Flags().Bool("authorize", false, "run the Google consent flow before exporting")
	cmd.Flags().String("spreadsheet-id", "", "write to this spreadsheet instead of the configured one")
	return cmd
}
