package task

import (
	"context"
	"log/slog"
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateTaskDTO) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	MyTasks(ctx context.Context, filter MyTasksFilter) ([]Task, error)
	MyTasksSummary(ctx context.Context) (*MyTasksSummary, error)
	Get(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error)
	Delete(ctx context.Context, id string) error
	ProjectStats(ctx context.Context, projectID string) (*Stats, error)
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

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

func (s *Service) Create(ctx context.Context, dto CreateTaskDTO) (*Task, error) {
	var t Task
	if err := s.api.Post(ctx, "/tasks", dto, &t); err != nil {
		s.logger.Error("failed to create task", "project_id", dto.ProjectID, "error", err)
		return nil, err
	}
	return &t, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	var tasks []Task
	if err := s.api.Get(ctx, "/tasks", filter.Query(), &tasks); err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Service) MyTasks(ctx context.Context, filter MyTasksFilter) ([]Task, error) {
	var tasks []Task
	if err := s.api.Get(ctx, "/tasks/my-tasks", filter.Query(), &tasks); err != nil {
		s.logger.Error("failed to list my tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Service) MyTasksSummary(ctx context.Context) (*MyTasksSummary, error) {
	var summary MyTasksSummary
	if err := s.api.Get(ctx, "/tasks/my-tasks/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	if id == "" {
		return nil, errors.ErrMissingID
	}
	var t Task
	if err := s.api.Get(ctx, taskPath(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error) {
	var t Task
	if err := s.api.Patch(ctx, taskPath(id), dto, &t); err != nil {
		s.logger.Error("failed to update task", "task_id", id, "error", err)
		return nil, err
	}
	return &t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, taskPath(id), nil); err != nil {
		s.logger.Error("failed to delete task", "task_id", id, "error", err)
		return err
	}
	return nil
}

func (s *Service) ProjectStats(ctx context.Context, projectID string) (*Stats, error) {
	if projectID == "" {
		return nil, errors.ErrMissingID
	}
	var stats Stats
	if err := s.api.Get(ctx, "/tasks/projects/"+url.PathEscape(projectID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
