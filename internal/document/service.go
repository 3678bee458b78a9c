package document

import (
	"context"
	"log/slog"
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

type ServiceAPI interface {
	Add(ctx context.Context, projectID string, dto CreateLinkDTO) (*Link, error)
	List(ctx context.Context, projectID string) ([]Link, error)
	Update(ctx context.Context, linkID string, dto UpdateLinkDTO) (*Link, error)
	Delete(ctx context.Context, linkID string) error
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

func projectPath(projectID string) string {
	return "/projects/" + url.PathEscape(projectID) + "/documents"
}

func linkPath(linkID string) string {
	return "/projects/documents/" + url.PathEscape(linkID)
}

func (s *Service) Add(ctx context.Context, projectID string, dto CreateLinkDTO) (*Link, error) {
	if projectID == "" {
		return nil, errors.ErrMissingID
	}
	var link Link
	if err := s.api.Post(ctx, projectPath(projectID), dto, &link); err != nil {
		s.logger.Error("failed to add document link", "project_id", projectID, "error", err)
		return nil, err
	}
	return &link, nil
}

func (s *Service) List(ctx context.Context, projectID string) ([]Link, error) {
	if projectID == "" {
		return nil, errors.ErrMissingID
	}
	var links []Link
	if err := s.api.Get(ctx, projectPath(projectID), nil, &links); err != nil {
		s.logger.Error("failed to list document links", "project_id", projectID, "error", err)
		return nil, err
	}
	return links, nil
}

func (s *Service) Update(ctx context.Context, linkID string, dto UpdateLinkDTO) (*Link, error) {
	var link Link
	if err := s.api.Patch(ctx, linkPath(linkID), dto, &link); err != nil {
		s.logger.Error("failed to update document link", "link_id", linkID, "error", err)
		return nil, err
	}
	return &link, nil
}

func (s *Service) Delete(ctx context.Context, linkID string) error {
	if err := s.api.Delete(ctx, linkPath(linkID), nil); err != nil {
		s.logger.Error("failed to delete document link", "link_id", linkID, "error", err)
		return err
	}
	return nil
}
