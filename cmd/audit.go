package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/project-console/internal/auditlog"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Browse the audit trail (admin only)",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit log entries, newest first",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		page, _ := cmd.Flags().GetInt("page")
		filter := auditlog.Filter{
			UserID:       optString(cmd, "user"),
			ActionType:   optString(cmd, "action"),
			ResourceType: optString(cmd, "resource-type"),
			ResourceID:   optString(cmd, "resource-id"),
			StartDate:    optString(cmd, "from"),
			EndDate:      optString(cmd, "to"),
		}
		filter.Limit = limit
		if err := filter.Validate(); err != nil {
			return errors.New(err.GetDetailedMessage())
		}

		view := auditlog.NewListView(app.AuditLogs, filter, app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		for s.Error == "" && view.Page() < page && view.HasNext() {
			view.NextPage(ctx)
			s = view.State()
		}
		if err := stateErr(s); err != nil {
			return err
		}

		out := auditlog.ListResponse{Total: view.Total(), Items: s.Data}
		return app.render(out, func(tw *tabwriter.Writer) {
			header(tw, "TIME", "USER", "ACTION", "RESOURCE", "NAME", "IP")
			for _, e := range s.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), deref(e.UserID), e.ActionType,
					e.ResourceType, deref(e.ResourceName), deref(e.IPAddress))
			}
			fmt.Fprintf(tw, "\npage %d of %d\t(%d entries)\n", view.Page(), view.Pages(), view.Total())
		})
	}),
}

func init() {
	auditListCmd.Flags().String("user", "", "only entries by this user id")
	auditListCmd.Flags().String("action", "", "only this action, e.g. create or login")
	auditListCmd.Flags().String("resource-type", "", "only this resource type, e.g. project")
	auditListCmd.Flags().String("resource-id", "", "only this resource id")
	auditListCmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	auditListCmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	auditListCmd.Flags().Int("limit", auditlog.DefaultLimit, "entries per page")
	auditListCmd.Flags().Int("page", 1, "page to show, starting at 1")
	auditCmd.AddCommand(auditListCmd)
}
