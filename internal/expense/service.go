package expense

import (
	"context"
	"log/slog"
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/query"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

type ServiceAPI interface {
	Create(ctx context.Context, projectID string, dto CreateExpenseDTO) (*Expense, error)
	List(ctx context.Context, projectID string, page query.Page) ([]Expense, error)
	BudgetSummary(ctx context.Context, projectID string) (*BudgetSummary, error)
	Get(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, id string, dto UpdateExpenseDTO) (*Expense, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	api    apiclient.API
	logger *slog.Logger
}

func NewService(api apiclient.API, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

func projectPath(projectID, rest string) string {
	return "/projects/" + url.PathEscape(projectID) + rest
}

func expensePath(id string) string {
	return "/expenses/" + url.PathEscape(id)
}

func (s *Service) Create(ctx context.Context, projectID string, dto CreateExpenseDTO) (*Expense, error) {
	if projectID == "" {
		return nil, errors.ErrMissingID
	}
	var e Expense
	if err := s.api.Post(ctx, projectPath(projectID, "/expenses"), dto, &e); err != nil {
		s.logger.Error("failed to create expense", "project_id", projectID, "error", err)
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context, projectID string, page query.Page) ([]Expense, error) {
	if projectID == "" {
		return nil, errors.ErrMissingID
	}
	var expenses []Expense
	if err := s.api.Get(ctx, projectPath(projectID, "/expenses"), query.New().Page(page).Values(), &expenses); err != nil {
		s.logger.Error("failed to list expenses", "project_id", projectID, "error", err)
		return nil, err
	}
	return expenses, nil
}

func (s *Service) BudgetSummary(ctx context.Context, projectID string) (*BudgetSummary, error) {
	if projectID == "" {
		return nil, errors.ErrMissingID
	}
	var summary BudgetSummary
	if err := s.api.Get(ctx, projectPath(projectID, "/budget"), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Expense, error) {
	if id == "" {
		return nil, errors.ErrMissingID
	}
	var e Expense
	if err := s.api.Get(ctx, expensePath(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateExpenseDTO) (*Expense, error) {
	var e Expense
	if err := s.api.Patch(ctx, expensePath(id), dto, &e); err != nil {
		s.logger.Error("failed to update expense", "expense_id", id, "error", err)
		return nil, err
	}
	return &e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, expensePath(id), nil); err != nil {
		s.logger.Error("failed to delete expense", "expense_id", id, "error", err)
		return err
	}
	return nil
}
