package project

import (
	"context"
	"log/slog"
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]Project, error)
	ListOverdue(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Detail, error)
	Create(ctx context.Context, dto CreateProjectDTO) (*Project, error)
	Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID string, dto AddMemberDTO) (*Member, error)
	ListMembers(ctx context.Context, projectID string) ([]Member, error)
	RemoveMember(ctx context.Context, projectID, userID string) error
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

func projectPath(id string) string {
	return "/projects/" + url.PathEscape(id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	var projects []Project
	if err := s.api.Get(ctx, "/projects", filter.Query(), &projects); err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}
	return projects, nil
}

func (s *Service) ListOverdue(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := s.api.Get(ctx, "/projects/overdue", nil, &projects); err != nil {
		s.logger.Error("failed to list overdue projects", "error", err)
		return nil, err
	}
	return projects, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	if id == "" {
		return nil, errors.ErrMissingID
	}
	var detail Detail
	if err := s.api.Get(ctx, projectPath(id), nil, &detail); err != nil {
		s.logger.Error("failed to get project", "project_id", id, "error", err)
		return nil, err
	}
	return &detail, nil
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	var p Project
	if err := s.api.Post(ctx, "/projects", dto, &p); err != nil {
		s.logger.Error("failed to create project", "name", dto.Name, "error", err)
		return nil, err
	}
	s.logger.Info("project created", "project_id", p.ID)
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error) {
	if id == "" {
		return nil, errors.ErrMissingID
	}
	var p Project
	if err := s.api.Patch(ctx, projectPath(id), dto, &p); err != nil {
		s.logger.Error("failed to update project", "project_id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.ErrMissingID
	}
	if err := s.api.Delete(ctx, projectPath(id), nil); err != nil {
		s.logger.Error("failed to delete project", "project_id", id, "error", err)
		return err
	}
	return nil
}

func (s *Service) AddMember(ctx context.Context, projectID string, dto AddMemberDTO) (*Member, error) {
	var m Member
	if err := s.api.Post(ctx, projectPath(projectID)+"/members", dto, &m); err != nil {
		s.logger.Error("failed to add project member", "project_id", projectID, "user_id", dto.UserID, "error", err)
		return nil, err
	}
	return &m, nil
}

func (s *Service) ListMembers(ctx context.Context, projectID string) ([]Member, error) {
	var members []Member
	if err := s.api.Get(ctx, projectPath(projectID)+"/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, projectID, userID string) error {
	if err := s.api.Delete(ctx, projectPath(projectID)+"/members/"+url.PathEscape(userID), nil); err != nil {
		s.logger.Error("failed to remove project member", "project_id", projectID, "user_id", userID, "error", err)
		return err
	}
	return nil
}
