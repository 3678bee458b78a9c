package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/frahmantamala/project-console/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show workspace totals",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		res := dashboard.Load(ctx, app.Dashboard)
		if err := resultErr(res); err != nil {
			return err
		}
		st := res.Data
		return app.render(st, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Projects\t%d\n", st.TotalProjects)
			fmt.Fprintf(tw, "  planning\t%d\n", st.ProjectsByStatus.Planning)
			fmt.Fprintf(tw, "  in progress\t%d\n", st.ProjectsByStatus.InProgress)
			fmt.Fprintf(tw, "  completed\t%d\n", st.ProjectsByStatus.Completed)
			fmt.Fprintf(tw, "  archived\t%d\n", st.ProjectsByStatus.Archived)
			fmt.Fprintf(tw, "Budget\t%s spent of %s (%.1f%%)\n", money(st.TotalSpent), money(st.TotalBudget), st.BudgetUsageRate)
			fmt.Fprintf(tw, "Overdue projects\t%d\n", st.OverdueProjects)
			fmt.Fprintf(tw, "Tasks\t%d (%d overdue)\n", st.TotalTasks, st.OverdueTasks)
			fmt.Fprintf(tw, "My pending tasks\t%d\n", st.MyPendingTasks)
		})
	}),
}
