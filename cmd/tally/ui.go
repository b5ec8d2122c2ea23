package main

import (
	"log/slog"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/tui"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the full-screen dashboard",
		Long: `Open the interactive dashboard. Log in or register from the first
screen; the session is remembered between runs. Press ? for keys.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				level, err := common.ParseLevel(a.cfg.LogLevel)
				if err != nil {
					return err
				}
				closer, err := common.RedirectToFile(a.cfg.LogFile, level, a.cfg.LogFormat)
				if err != nil {
					return err
				}
				defer func() {
					if closeErr := closer.Close(); closeErr != nil {
						slog.Error("failed to close log file", "error", closeErr)
					}
				}()

				return tui.Run(cmd.Context(), a.session, a.engine,
					tui.WithTheme(themes.GetTheme(a.cfg.Theme)),
					tui.WithCurrency(a.cfg.Currency),
				)
			})
		},
	}
}
