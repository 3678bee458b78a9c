package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		view := project.NewListView(app.Projects, project.ListFilter{
			Status:  optEnum[project.Status](cmd, "status"),
			OwnerID: optString(cmd, "owner"),
			Page:    pageOf(cmd),
		}, app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		if err := stateErr(s); err != nil {
			return err
		}
		return app.render(s.Data, func(tw *tabwriter.Writer) { projectRows(tw, s.Data) })
	}),
}

var projectsOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List projects past their end date",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		projects, err := app.Projects.ListOverdue(ctx)
		if err != nil {
			return err
		}
		return app.render(projects, func(tw *tabwriter.Writer) { projectRows(tw, projects) })
	}),
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project with its members and document links",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		if err := stateErr(s); err != nil {
			return err
		}
		d := s.Data
		return app.render(d, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "ID\t%s\n", d.ID)
			fmt.Fprintf(tw, "Name\t%s\n", d.Name)
			fmt.Fprintf(tw, "Status\t%s\n", d.Status)
			fmt.Fprintf(tw, "Owner\t%s\n", d.Owner.Name)
			fmt.Fprintf(tw, "Dates\t%s .. %s\n", deref(d.StartDate), deref(d.EndDate))
			fmt.Fprintf(tw, "Budget\t%s spent of %s (%.1f%%)\n", money(d.Spent), money(d.Budget), d.UsagePercent())
			if d.IsOverBudget() {
				fmt.Fprintf(tw, "\tover budget by %s\n", money(-d.Remaining()))
			}
			fmt.Fprintln(tw)
			header(tw, "MEMBER", "EMAIL", "ROLE")
			for _, m := range d.Members {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.User.Name, m.User.Email, deref(m.Role))
			}
			fmt.Fprintln(tw)
			linkRows(tw, d.DocumentLinks)
		})
	}),
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		view := project.NewListView(app.Projects, project.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Create(ctx, project.CreateProjectDTO{
			Name:        name,
			Description: optString(cmd, "description"),
			Status:      optEnum[project.Status](cmd, "status"),
			StartDate:   optString(cmd, "start"),
			EndDate:     optString(cmd, "end"),
			Budget:      optFloat(cmd, "budget"),
			OwnerID:     optString(cmd, "owner"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { projectRows(tw, []project.Project{res.Data}) })
	}),
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Change project fields",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Update(ctx, project.UpdateProjectDTO{
			Name:        optString(cmd, "name"),
			Description: optString(cmd, "description"),
			Status:      optEnum[project.Status](cmd, "status"),
			StartDate:   optString(cmd, "start"),
			EndDate:     optString(cmd, "end"),
			Budget:      optFloat(cmd, "budget"),
			Spent:       optFloat(cmd, "spent"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { projectRows(tw, []project.Project{res.Data}) })
	}),
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project with its tasks and expenses",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := project.NewListView(app.Projects, project.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		if err := resultErr(view.Delete(ctx, args[0])); err != nil {
			return err
		}
		app.printf("Deleted project %s\n", args[0])
		return nil
	}),
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage project membership",
}

var membersListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List project members",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		members, err := app.Projects.ListMembers(ctx, args[0])
		if err != nil {
			return err
		}
		return app.render(members, func(tw *tabwriter.Writer) {
			header(tw, "USER ID", "NAME", "EMAIL", "ROLE")
			for _, m := range members {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.UserID, m.User.Name, m.User.Email, deref(m.Role))
			}
		})
	}),
}

var membersAvailableCmd = &cobra.Command{
	Use:   "available <project-id>",
	Short: "List active users who could join the project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], app.viewOptions()...)
		defer view.Close()
		if err := stateErr(view.Open(ctx)); err != nil {
			return err
		}
		users, err := app.Users.List(ctx, user.ListFilter{})
		if err != nil {
			return err
		}
		available := view.AvailableUsers(users)
		return app.render(available, func(tw *tabwriter.Writer) { userRows(tw, available) })
	}),
}

var membersAddCmd = &cobra.Command{
	Use:   "add <project-id> <user-id>",
	Short: "Add a user to a project",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.AddMember(ctx, project.AddMemberDTO{UserID: args[1], Role: optString(cmd, "role")})
		if err := resultErr(res); err != nil {
			return err
		}
		app.printf("Added %s to project %s\n", res.Data.User.Name, args[0])
		if jsonOutput {
			return app.render(res.Data, nil)
		}
		return nil
	}),
}

var membersRemoveCmd = &cobra.Command{
	Use:   "remove <project-id> <user-id>",
	Short: "Remove a user from a project",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		if err := resultErr(view.RemoveMember(ctx, args[1])); err != nil {
			return err
		}
		app.printf("Removed %s from project %s\n", args[1], args[0])
		return nil
	}),
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage project document links",
}

var docsListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List document links of a project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		links, err := app.Documents.List(ctx, args[0])
		if err != nil {
			return err
		}
		return app.render(links, func(tw *tabwriter.Writer) { linkRows(tw, links) })
	}),
}

var docsAddCmd = &cobra.Command{
	Use:   "add <project-id>",
	Short: "Attach a document link to a project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		link, _ := cmd.Flags().GetString("url")
		view := project.NewDetailView(app.Projects, app.Documents, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.AddDocumentLink(ctx, document.CreateLinkDTO{
			Title:       title,
			URL:         link,
			Description: optString(cmd, "description"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { linkRows(tw, []document.Link{res.Data}) })
	}),
}

var docsUpdateCmd = &cobra.Command{
	Use:   "update <project-id> <link-id>",
	Short: "Change a document link's title or description",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.UpdateDocumentLink(ctx, args[1], document.UpdateLinkDTO{
			Title:       optString(cmd, "title"),
			Description: optString(cmd, "description"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { linkRows(tw, []document.Link{res.Data}) })
	}),
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id> <link-id>",
	Short: "Remove a document link",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := project.NewDetailView(app.Projects, app.Documents, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		if err := resultErr(view.DeleteDocumentLink(ctx, args[1])); err != nil {
			return err
		}
		app.printf("Deleted document link %s\n", args[1])
		return nil
	}),
}

func projectRows(tw *tabwriter.Writer, projects []project.Project) {
	header(tw, "ID", "NAME", "STATUS", "OWNER", "BUDGET", "SPENT", "END")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Status, p.Owner.Name, money(p.Budget), money(p.Spent), deref(p.EndDate))
	}
}

func linkRows(tw *tabwriter.Writer, links []document.Link) {
	header(tw, "LINK ID", "TITLE", "URL", "FEISHU")
	for _, l := range links {
		feishu := ""
		if l.IsFeishu() {
			feishu = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Title, l.URL, feishu)
	}
}

func projectFields(cmd *cobra.Command) {
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("status", "", "planning, in_progress, completed or archived")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Float64("budget", 0, "budget")
}

func init() {
	projectsListCmd.Flags().String("status", "", "only projects with this status")
	projectsListCmd.Flags().String("owner", "", "only projects owned by this user id")
	addPageFlags(projectsListCmd)

	projectsCreateCmd.Flags().String("name", "", "project name")
	projectsCreateCmd.Flags().String("owner", "", "owner user id (defaults to you)")
	projectFields(projectsCreateCmd)

	projectsUpdateCmd.Flags().String("name", "", "project name")
	projectsUpdateCmd.Flags().Float64("spent", 0, "amount spent so far")
	projectFields(projectsUpdateCmd)

	projectsCmd.AddCommand(projectsListCmd, projectsOverdueCmd, projectsShowCmd,
		projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd)

	membersAddCmd.Flags().String("role", "", "role on the project, e.g. developer")
	membersCmd.AddCommand(membersListCmd, membersAvailableCmd, membersAddCmd, membersRemoveCmd)

	docsAddCmd.Flags().String("title", "", "link title")
	docsAddCmd.Flags().String("url", "", "http or https URL")
	docsAddCmd.Flags().String("description", "", "description")
	docsUpdateCmd.Flags().String("title", "", "link title")
	docsUpdateCmd.Flags().String("description", "", "description")
	docsCmd.AddCommand(docsListCmd, docsAddCmd, docsUpdateCmd, docsDeleteCmd)
}
