package dashboard

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

const msgLoadFailed = "Failed to load dashboard"

type ProjectStatusCount struct {
	Planning   int `json:"planning"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Archived   int `json:"archived"`
}

type Stats struct {
	TotalProjects    int                `json:"total_projects"`
	ProjectsByStatus ProjectStatusCount `json:"projects_by_status"`
	TotalBudget      float64            `json:"total_budget"`
	TotalSpent       float64            `json:"total_spent"`
	BudgetUsageRate  float64            `json:"budget_usage_rate"`
	OverdueProjects  int                `json:"overdue_projects"`
	OverdueTasks     int                `json:"overdue_tasks"`
	TotalTasks       int                `json:"total_tasks"`
	MyPendingTasks   int                `json:"my_pending_tasks"`
}

type ServiceAPI interface {
	Stats(ctx context.Context) (*Stats, error)
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

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.api.Get(ctx, "/dashboard/stats", nil, &stats); err != nil {
		s.logger.Error("failed to load dashboard stats", "error", err)
		return nil, err
	}
	return &stats, nil
}

// Load fetches the stats and converts a failure into a user-facing message.
func Load(ctx context.Context, svc ServiceAPI) state.Result[Stats] {
	stats, err := state.Value(svc.Stats(ctx))
	if err != nil {
		return state.Failed[Stats](internal.ErrorMessage(err, msgLoadFailed))
	}
	return state.Ok(stats)
}
