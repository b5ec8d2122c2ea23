package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// flagOrAsk returns the flag value when given, otherwise prompts for it.
// Secret values are read without echo when stdin is a terminal.
func flagOrAsk(ctx context.Context, cmd *cobra.Command, p *cli.Prompter, flag, label, def string, secret bool) (string, error) {
	if cmd.Flags().Changed(flag) {
		return cmd.Flags().GetString(flag)
	}

	fd := int(os.Stdin.Fd()) // #nosec G115
	if secret && term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), cli.FormatPrompt(label+":"))
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", label, err)
		}
		return string(b), nil
	}
	return p.Ask(ctx, label, def)
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the tally server",
		Long: `Log in with your email and password. The session is saved locally
and stays active until you run 'tally logout'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app) error {
				p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

				email, err := flagOrAsk(ctx, cmd, p, "email", "Email", "", false)
				if err != nil {
					return err
				}
				password, err := flagOrAsk(ctx, cmd, p, "password", "Password", "", true)
				if err != nil {
					return err
				}

				user, err := a.session.Login(ctx, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Logged in as %s", user.FullName)))
				return nil
			})
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted when omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the tally server. Passwords need at least 8
characters, one number and one of !@#$%^&*. Log in afterwards with 'tally login'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app) error {
				p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

				var in session.RegisterInput
				var err error
				if in.FullName, err = flagOrAsk(ctx, cmd, p, "name", "Full name", "", false); err != nil {
					return err
				}
				if in.Email, err = flagOrAsk(ctx, cmd, p, "email", "Email", "", false); err != nil {
					return err
				}
				if in.Password, err = flagOrAsk(ctx, cmd, p, "password", "Password", "", true); err != nil {
					return err
				}
				if in.ConfirmPassword, err = flagOrAsk(ctx, cmd, p, "confirm-password", "Confirm password", "", true); err != nil {
					return err
				}

				if err := a.session.Register(ctx, in); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Account created. Run 'tally login' to sign in."))
				return nil
			})
		},
	}

	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "password (prompted when omitted)")
	cmd.Flags().String("confirm-password", "", "password again")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app) error {
				if err := a.session.Logout(ctx); err != nil {
					return err
				}
				a.engine.Reset()
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
				return nil
			})
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				user, ok := a.session.Current()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Not logged in"))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.FullName, user.Email)
				return nil
			})
		},
	}
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update your name, email or password",
		Long: `Update the profile of the logged-in user. Unspecified fields keep their
current values. Pass --password to change the password as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app) error {
				current, ok := a.session.Current()
				if !ok {
					return errNotLoggedIn
				}
				p := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

				in := session.ProfileInput{FullName: current.FullName, Email: current.Email}
				if cmd.Flags().Changed("name") {
					in.FullName, _ = cmd.Flags().GetString("name")
				}
				if cmd.Flags().Changed("email") {
					in.Email, _ = cmd.Flags().GetString("email")
				}
				if cmd.Flags().Changed("password") {
					in.Password, _ = cmd.Flags().GetString("password")
					var err error
					if in.ConfirmPassword, err = flagOrAsk(ctx, cmd, p, "confirm-password", "Confirm new password", "", true); err != nil {
						return err
					}
				}

				user, err := a.session.UpdateProfile(ctx, in)
				if err != nil {
					return err
				}
				a.engine.SetUser(user)
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Profile updated for %s <%s>", user.FullName, user.Email)))
				return nil
			})
		},
	}

	cmd.Flags().String("name", "", "new full name")
	cmd.Flags().String("email", "", "new email")
	cmd.Flags().String("password", "", "new password")
	cmd.Flags().String("confirm-password", "", "new password again")
	return cmd
}
