package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/project-console/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		password, err := passwordOrPrompt(loginPassword)
		if err != nil {
			return err
		}
		res := app.Auth.Login(ctx, auth.Credentials{Username: loginEmail, Password: password})
		if err := resultErr(res); err != nil {
			return err
		}
		app.printf("Logged in as %s (%s)\n", res.Data.Name, res.Data.Role)
		if jsonOutput {
			return app.render(res.Data, nil)
		}
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		if err := resultErr(app.Auth.Logout(ctx)); err != nil {
			return err
		}
		app.printf("Logged out\n")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user as the server sees it",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		if !app.Auth.Current().IsAuthenticated {
			return fmt.Errorf("not logged in")
		}
		res := app.Auth.Refresh(ctx)
		if err := resultErr(res); err != nil {
			return err
		}
		u := res.Data
		return app.render(u, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "ID\t%s\n", u.ID)
			fmt.Fprintf(tw, "Name\t%s\n", u.Name)
			fmt.Fprintf(tw, "Email\t%s\n", u.Email)
			fmt.Fprintf(tw, "Role\t%s\n", u.Role)
		})
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		password, err := passwordOrPrompt(registerPassword)
		if err != nil {
			return err
		}
		res := app.Auth.Register(ctx, auth.RegisterDTO{
			Name:     registerName,
			Email:    registerEmail,
			Password: password,
		})
		if err := resultErr(res); err != nil {
			return err
		}
		app.printf("Registered %s, you can now log in\n", res.Data.Email)
		if jsonOutput {
			return app.render(res.Data, nil)
		}
		return nil
	}),
}

// passwordOrPrompt reads the password from the terminal without echo when
// it was not passed as a flag.
func passwordOrPrompt(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password (prompted when omitted)")
}
