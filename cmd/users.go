package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage accounts (admin only)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		view := user.NewListView(app.Users, user.ListFilter{
			IsActive: optBool(cmd, "active"),
			Page:     pageOf(cmd),
		}, app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		if err := stateErr(s); err != nil {
			return err
		}
		return app.render(s.Data, func(tw *tabwriter.Writer) { userRows(tw, s.Data) })
	}),
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		password, err := passwordOrPrompt(password)
		if err != nil {
			return err
		}
		view := user.NewListView(app.Users, user.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Create(ctx, user.CreateUserDTO{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     optEnum[user.Role](cmd, "role"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { userRows(tw, []user.User{res.Data}) })
	}),
}

var usersRenameCmd = &cobra.Command{
	Use:   "rename <user-id> <name>",
	Short: "Change an account's display name",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := user.NewListView(app.Users, user.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Update(ctx, args[0], user.UpdateUserDTO{Name: &args[1]})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { userRows(tw, []user.User{res.Data}) })
	}),
}

var usersRoleCmd = &cobra.Command{
	Use:   "role <user-id> <admin|member>",
	Short: "Change an account's role",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := user.NewListView(app.Users, user.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.UpdateRole(ctx, args[0], user.Role(args[1]))
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { userRows(tw, []user.User{res.Data}) })
	}),
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate <user-id>",
	Short: "Deactivate an account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := user.NewListView(app.Users, user.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Deactivate(ctx, args[0])
		if err := resultErr(res); err != nil {
			return err
		}
		app.printf("Deactivated %s\n", res.Data.Email)
		if jsonOutput {
			return app.render(res.Data, nil)
		}
		return nil
	}),
}

func userRows(tw *tabwriter.Writer, users []user.User) {
	header(tw, "ID", "NAME", "EMAIL", "ROLE", "ACTIVE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.IsActive)
	}
}

func init() {
	usersListCmd.Flags().Bool("active", false, "filter on active (true) or inactive (false) accounts")
	addPageFlags(usersListCmd)

	usersCreateCmd.Flags().String("name", "", "display name")
	usersCreateCmd.Flags().String("email", "", "account email")
	usersCreateCmd.Flags().String("password", "", "initial password (prompted when omitted)")
	usersCreateCmd.Flags().String("role", "", "admin or member (defaults to member)")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersRenameCmd, usersRoleCmd, usersDeactivateCmd)
}
