package cmd

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/task"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task"},
	Short:   "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		view := task.NewListView(app.Tasks, task.ListFilter{
			ProjectID:  optString(cmd, "project"),
			AssigneeID: optString(cmd, "assignee"),
			Status:     optEnum[task.Status](cmd, "status"),
			Priority:   optEnum[task.Priority](cmd, "priority"),
			IsOverdue:  optBool(cmd, "overdue"),
			Page:       pageOf(cmd),
		}, app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		if err := stateErr(s); err != nil {
			return err
		}
		return app.render(s.Data, func(tw *tabwriter.Writer) { taskRows(tw, s.Data) })
	}),
}

var tasksMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List tasks assigned to you",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		view := task.NewMyTasksView(app.Tasks, task.MyTasksFilter{
			Status:    optEnum[task.Status](cmd, "status"),
			IsOverdue: optBool(cmd, "overdue"),
		}, app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		if err := stateErr(s); err != nil {
			return err
		}
		return app.render(s.Data, func(tw *tabwriter.Writer) { taskRows(tw, s.Data) })
	}),
}

var tasksSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise your workload",
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, _ []string) error {
		sum, err := app.Tasks.MyTasksSummary(ctx)
		if err != nil {
			return err
		}
		return app.render(sum, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Pending\t%d\n", sum.PendingTasks)
			fmt.Fprintf(tw, "Overdue\t%d\n", sum.OverdueTasks)
			fmt.Fprintf(tw, "Completed this week\t%d\n", sum.CompletedThisWeek)
			priorities := make([]string, 0, len(sum.TasksByPriority))
			for p := range sum.TasksByPriority {
				priorities = append(priorities, p)
			}
			sort.Strings(priorities)
			for _, p := range priorities {
				fmt.Fprintf(tw, "  %s\t%d\n", p, sum.TasksByPriority[p])
			}
		})
	}),
}

var tasksStatsCmd = &cobra.Command{
	Use:   "stats <project-id>",
	Short: "Task counts of a project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		st, err := app.Tasks.ProjectStats(ctx, args[0])
		if err != nil {
			return err
		}
		return app.render(st, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Total\t%d\n", st.Total)
			fmt.Fprintf(tw, "Todo\t%d\n", st.Todo)
			fmt.Fprintf(tw, "In progress\t%d\n", st.InProgress)
			fmt.Fprintf(tw, "In review\t%d\n", st.InReview)
			fmt.Fprintf(tw, "Completed\t%d (%.1f%%)\n", st.Completed, st.CompletionRate())
			fmt.Fprintf(tw, "Cancelled\t%d\n", st.Cancelled)
			fmt.Fprintf(tw, "Overdue\t%d\n", st.Overdue)
		})
	}),
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		t, err := app.Tasks.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return app.render(t, func(tw *tabwriter.Writer) { taskRows(tw, []task.Task{*t}) })
	}),
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		projectID, _ := cmd.Flags().GetString("project")
		view := task.NewListView(app.Tasks, task.ListFilter{ProjectID: &projectID}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Create(ctx, task.CreateTaskDTO{
			Name:        name,
			ProjectID:   projectID,
			Description: optString(cmd, "description"),
			Status:      optEnum[task.Status](cmd, "status"),
			Priority:    optEnum[task.Priority](cmd, "priority"),
			AssigneeID:  optString(cmd, "assignee"),
			DueDate:     optString(cmd, "due"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { taskRows(tw, []task.Task{res.Data}) })
	}),
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Change task fields",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		view := task.NewListView(app.Tasks, task.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Update(ctx, args[0], task.UpdateTaskDTO{
			Name:        optString(cmd, "name"),
			Description: optString(cmd, "description"),
			Status:      optEnum[task.Status](cmd, "status"),
			Priority:    optEnum[task.Priority](cmd, "priority"),
			AssigneeID:  optString(cmd, "assignee"),
			DueDate:     optString(cmd, "due"),
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { taskRows(tw, []task.Task{res.Data}) })
	}),
}

var tasksStatusCmd = &cobra.Command{
	Use:   "status <task-id> <status>",
	Short: "Move a task to another status",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := task.NewMyTasksView(app.Tasks, task.MyTasksFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.SetStatus(ctx, args[0], task.Status(args[1]))
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { taskRows(tw, []task.Task{res.Data}) })
	}),
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := task.NewListView(app.Tasks, task.ListFilter{}, append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		if err := resultErr(view.Delete(ctx, args[0])); err != nil {
			return err
		}
		app.printf("Deleted task %s\n", args[0])
		return nil
	}),
}

func taskRows(tw *tabwriter.Writer, tasks []task.Task) {
	header(tw, "ID", "NAME", "STATUS", "PRIORITY", "ASSIGNEE", "DUE", "OVERDUE")
	for _, t := range tasks {
		overdue := ""
		if t.IsOverdue {
			overdue = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Status, t.Priority, t.AssigneeLabel(), deref(t.DueDate), overdue)
	}
}

func taskFields(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "task name")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("status", "", "todo, in_progress, in_review, completed or cancelled")
	cmd.Flags().String("priority", "", "low, medium, high or urgent")
	cmd.Flags().String("assignee", "", "assignee user id")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
}

func init() {
	tasksListCmd.Flags().String("project", "", "only tasks of this project id")
	tasksListCmd.Flags().String("assignee", "", "only tasks assigned to this user id")
	tasksListCmd.Flags().String("status", "", "only tasks with this status")
	tasksListCmd.Flags().String("priority", "", "only tasks with this priority")
	tasksListCmd.Flags().Bool("overdue", false, "only overdue tasks")
	addPageFlags(tasksListCmd)

	tasksMineCmd.Flags().String("status", "", "only tasks with this status")
	tasksMineCmd.Flags().Bool("overdue", false, "only overdue tasks")

	taskFields(tasksCreateCmd)
	tasksCreateCmd.Flags().String("project", "", "project id")
	taskFields(tasksUpdateCmd)

	tasksCmd.AddCommand(tasksListCmd, tasksMineCmd, tasksSummaryCmd, tasksStatsCmd, tasksShowCmd,
		tasksCreateCmd, tasksUpdateCmd, tasksStatusCmd, tasksDeleteCmd)
}
