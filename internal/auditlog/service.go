package auditlog

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

type ServiceAPI interface {
	List(ctx context.Context, filter Filter) (*ListResponse, error)
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

func (s *Service) List(ctx context.Context, filter Filter) (*ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var resp ListResponse
	if err := s.api.Get(ctx, "/audit-logs", filter.Query(), &resp); err != nil {
		s.logger.Error("failed to list audit logs", "error", err)
		return nil, err
	}
	return &resp, nil
}
