package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/expense"
	"github.com/spf13/cobra"
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"expense"},
	Short:   "Record project spending",
}

var expensesListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's expenses",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := expense.NewListView(app.Expenses, args[0], app.viewOptions()...)
		defer view.Close()

		s := view.Open(ctx)
		if err := stateErr(s); err != nil {
			return err
		}
		return app.render(s.Data, func(tw *tabwriter.Writer) {
			expenseRows(tw, s.Data)
			fmt.Fprintf(tw, "\tTOTAL\t%s\n", money(expense.Total(s.Data)))
		})
	}),
}

var expensesBudgetCmd = &cobra.Command{
	Use:   "budget <project-id>",
	Short: "Show how much of a project's budget is used",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := expense.NewListView(app.Expenses, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Budget(ctx)
		if err := resultErr(res); err != nil {
			return err
		}
		b := res.Data
		return app.render(b, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Budget\t%s\n", money(b.Budget))
			fmt.Fprintf(tw, "Spent\t%s\n", money(b.Spent))
			fmt.Fprintf(tw, "Remaining\t%s\n", money(b.Remaining))
			fmt.Fprintf(tw, "Usage\t%.1f%%\n", b.UsagePercentage)
			fmt.Fprintf(tw, "Expenses\t%d\n", b.ExpenseCount)
			if b.IsOverBudget {
				fmt.Fprintln(tw, "\tOVER BUDGET")
			}
		})
	}),
}

var expensesAddCmd = &cobra.Command{
	Use:   "add <project-id>",
	Short: "Record an expense against a project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		amount, _ := cmd.Flags().GetFloat64("amount")
		description, _ := cmd.Flags().GetString("description")
		recordedAt, err := optTime(cmd, "recorded-at")
		if err != nil {
			return err
		}
		view := expense.NewListView(app.Expenses, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Create(ctx, expense.CreateExpenseDTO{
			Amount:      amount,
			Description: description,
			Category:    optString(cmd, "category"),
			RecordedAt:  recordedAt,
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { expenseRows(tw, []expense.Expense{res.Data}) })
	}),
}

var expensesUpdateCmd = &cobra.Command{
	Use:   "update <project-id> <expense-id>",
	Short: "Correct a recorded expense",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error {
		recordedAt, err := optTime(cmd, "recorded-at")
		if err != nil {
			return err
		}
		view := expense.NewListView(app.Expenses, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		res := view.Update(ctx, args[1], expense.UpdateExpenseDTO{
			Amount:      optFloat(cmd, "amount"),
			Description: optString(cmd, "description"),
			Category:    optString(cmd, "category"),
			RecordedAt:  recordedAt,
		})
		if err := resultErr(res); err != nil {
			return err
		}
		return app.render(res.Data, func(tw *tabwriter.Writer) { expenseRows(tw, []expense.Expense{res.Data}) })
	}),
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <project-id> <expense-id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, _ *cobra.Command, app *App, args []string) error {
		view := expense.NewListView(app.Expenses, args[0], append(app.viewOptions(), state.WithAutoFetch(false))...)
		defer view.Close()

		if err := resultErr(view.Delete(ctx, args[1])); err != nil {
			return err
		}
		app.printf("Deleted expense %s\n", args[1])
		return nil
	}),
}

// optTime accepts a plain date or a full RFC 3339 timestamp.
func optTime(cmd *cobra.Command, name string) (*time.Time, error) {
	s := optString(cmd, name)
	if s == nil {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, *s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("--%s: expected YYYY-MM-DD or an RFC 3339 timestamp, got %q", name, *s)
}

func expenseRows(tw *tabwriter.Writer, expenses []expense.Expense) {
	header(tw, "ID", "DESCRIPTION", "AMOUNT", "CATEGORY", "RECORDED")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Description, money(e.Amount), deref(e.Category), e.RecordedAt.Format(time.DateOnly))
	}
}

func init() {
	for _, c := range []*cobra.Command{expensesAddCmd, expensesUpdateCmd} {
		c.Flags().Float64("amount", 0, "amount spent")
		c.Flags().String("description", "", "what the money went on")
		c.Flags().String("category", "", "category, e.g. infrastructure")
		c.Flags().String("recorded-at", "", "when it was spent (defaults to now)")
	}
	expensesCmd.AddCommand(expensesListCmd, expensesBudgetCmd, expensesAddCmd, expensesUpdateCmd, expensesDeleteCmd)
}
