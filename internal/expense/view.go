package expense

import (
	"context"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/core/state"
)

const (
	msgLoadFailed   = "Failed to load expenses"
	msgCreateFailed = "Failed to create expense"
	msgUpdateFailed = "Failed to update expense"
	msgDeleteFailed = "Failed to delete expense"
	msgBudgetFailed = "Failed to load budget summary"
	msgNoProjectID  = "No project ID"
)

// ListFilter scopes the expense list to one project.
type ListFilter struct {
	ProjectID string `json:"project_id"`
	query.Page
}

// ListView is the expense ledger of one project. Mutations do not refresh
// the budget summary; call Budget for that.
type ListView struct {
	*state.List[Expense, ListFilter]
	svc ServiceAPI
}

func NewListView(svc ServiceAPI, projectID string, opts ...state.Option) *ListView {
	fetch := func(ctx context.Context, f ListFilter) ([]Expense, error) {
		if f.ProjectID == "" {
			return []Expense{}, nil
		}
		return svc.List(ctx, f.ProjectID, f.Page)
	}
	return &ListView{
		List: state.NewList(fetch, ListFilter{ProjectID: projectID}, msgLoadFailed, opts...),
		svc:  svc,
	}
}

func (v *ListView) ProjectID() string {
	return v.Filter().ProjectID
}

// SetProjectID moves the ledger to another project, refetching once when it
// changed.
func (v *ListView) SetProjectID(ctx context.Context, projectID string) bool {
	f := v.Filter()
	f.ProjectID = projectID
	return v.SetFilter(ctx, f)
}

func (v *ListView) Create(ctx context.Context, dto CreateExpenseDTO) state.Result[Expense] {
	projectID := v.ProjectID()
	if projectID == "" {
		return state.Failed[Expense](msgNoProjectID)
	}
	if err := dto.Validate(); err != nil {
		return state.Failed[Expense](err.GetDetailedMessage())
	}
	return v.List.Create(ctx, func(ctx context.Context) (Expense, error) {
		return state.Value(v.svc.Create(ctx, projectID, dto))
	}, msgCreateFailed)
}

func (v *ListView) Update(ctx context.Context, id string, dto UpdateExpenseDTO) state.Result[Expense] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Expense](err.GetDetailedMessage())
	}
	return v.List.Update(ctx, func(ctx context.Context) (Expense, error) {
		return state.Value(v.svc.Update(ctx, id, dto))
	}, msgUpdateFailed)
}

func (v *ListView) Delete(ctx context.Context, id string) state.Result[string] {
	return v.List.Delete(ctx, id, func(ctx context.Context) error {
		return v.svc.Delete(ctx, id)
	}, msgDeleteFailed)
}

// Budget fetches the project's budget summary. It does not touch the list.
func (v *ListView) Budget(ctx context.Context) state.Result[BudgetSummary] {
	projectID := v.ProjectID()
	if projectID == "" {
		return state.Failed[BudgetSummary](msgNoProjectID)
	}
	summary, err := state.Value(v.svc.BudgetSummary(ctx, projectID))
	if err != nil {
		return state.Failed[BudgetSummary](internal.ErrorMessage(err, msgBudgetFailed))
	}
	return state.Ok(summary)
}
