package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errNoAuth = errors.New("authentication is not configured")

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Register and sign in",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Auth == nil {
				return errNoAuth
			}
			return nil
		},
	}

	cmd.AddCommand(
		newAuthRegisterCmd(app),
		newAuthLoginCmd(app),
		newAuthLogoutCmd(app),
		newAuthWhoamiCmd(app),
	)

	return cmd
}

// readPassword returns the flag value, or prompts when the terminal allows it.
func readPassword(app *App, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if !app.interactive() {
		return "", fmt.Errorf("--password is required")
	}
	var pw string
	if err := passwordForm("Password", &pw).Run(); err != nil {
		return "", err
	}
	return pw, nil
}

func newAuthRegisterCmd(app *App) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pw, err := readPassword(app, password)
			if err != nil {
				return err
			}
			u, err := app.Auth.Register(ctx, email, name, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Sign in with 'atelier auth login'.\n", formatter.Bold(u.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pw, err := readPassword(app, password)
			if err != nil {
				return err
			}
			u, err := app.Auth.SignIn(ctx, email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", formatter.Bold(u.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Auth.CurrentUser(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", formatter.Bold(u.DisplayName()), u.Email)
			return nil
		},
	}
}
