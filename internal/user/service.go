package user

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, dto CreateUserDTO) (*User, error)
	Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, error) {
	var users []User
	if err := s.api.Get(ctx, "/users", filter.Query(), &users); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, errors.ErrMissingID
	}
	var u User
	if err := s.api.Get(ctx, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	var u User
	if err := s.api.Post(ctx, "/users", dto, &u); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}
	return &u, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error) {
	var u User
	if err := s.api.Patch(ctx, "/users/"+url.PathEscape(id), dto, &u); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}
	return &u, nil
}

// Delete deactivates the account; the server answers with the user as it is
// now.
func (s *Service) Delete(ctx context.Context, id string) (*User, error) {
	var u User
	if err := s.api.Delete(ctx, "/users/"+url.PathEscape(id), &u); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return nil, err
	}
	return &u, nil
}

func (s *Service) UpdateRole(ctx context.Context, id string, role Role) (*User, error) {
	var u User
	q := url.Values{}
	q.Set("new_role", string(role))
	err := s.api.Do(ctx, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/users/" + url.PathEscape(id) + "/role",
		Query:  q,
	}, &u)
	if err != nil {
		s.logger.Error("failed to update user role", "user_id", id, "role", role, "error", err)
		return nil, err
	}
	return &u, nil
}
