package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
	"github.com/frahmantamala/project-console/internal/user"
)

type ServiceAPI interface {
	Login(ctx context.Context, creds Credentials) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, dto RegisterDTO) (*user.User, error)
	Me(ctx context.Context) (*user.User, error)
}

type Service struct {
	api        apiclient.API
	loginStyle string
	logger     *slog.Logger
}

// NewService builds the auth endpoints client. loginStyle selects how
// credentials are posted, see internal.LoginStyleForm and LoginStyleJSON.
func NewService(api apiclient.API, loginStyle string, logger *slog.Logger) *Service {
	if loginStyle == "" {
		loginStyle = internal.LoginStyleForm
	}
	return &Service{
		api:        api,
		loginStyle: loginStyle,
		logger:     logger,
	}
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/login"}
	if s.loginStyle == internal.LoginStyleJSON {
		req.Body = jsonLogin{Email: creds.Username, Password: creds.Password}
	} else {
		req.Form = url.Values{
			"username": {creds.Username},
			"password": {creds.Password},
		}
	}

	var resp LoginResponse
	if err := s.api.Do(ctx, req, &resp); err != nil {
		s.logger.Warn("login failed", "username", creds.Username, "error", err)
		return nil, err
	}
	return &resp, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "/auth/logout", nil, nil)
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	var u user.User
	if err := s.api.Post(ctx, "/auth/register", dto, &u); err != nil {
		s.logger.Warn("registration failed", "email", dto.Email, "error", err)
		return nil, err
	}
	return &u, nil
}

func (s *Service) Me(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := s.api.Get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
