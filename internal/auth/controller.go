package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/session"
	"github.com/frahmantamala/project-console/internal/user"
)

const (
	msgLoginFailed       = "Login failed"
	msgRegisterFailed    = "Registration failed"
	msgSessionSaveFailed = "Failed to save session"
	msgSessionLoadFailed = "Failed to load current user"
	msgNotAuthenticated  = "Not logged in"
)

// Controller drives login, logout and registration against the session.
type Controller struct {
	svc     ServiceAPI
	session session.Manager
	logger  *slog.Logger
}

func NewController(svc ServiceAPI, sess session.Manager, logger *slog.Logger) *Controller {
	return &Controller{
		svc:     svc,
		session: sess,
		logger:  logger,
	}
}

// Login authenticates and stores the returned user and token. On any
// failure the session is left as it was.
func (c *Controller) Login(ctx context.Context, creds Credentials) state.Result[user.User] {
	if err := creds.Validate(); err != nil {
		return state.Failed[user.User](err.GetDetailedMessage())
	}

	resp, err := c.svc.Login(ctx, creds)
	if err != nil {
		return state.Failed[user.User](internal.ErrorMessage(err, msgLoginFailed))
	}
	if resp.AccessToken == "" {
		c.logger.Error("login response without access token", "username", creds.Username)
		return state.Failed[user.User](msgLoginFailed)
	}

	if err := c.session.SetAuth(ctx, resp.User, resp.AccessToken); err != nil {
		c.logger.Error("failed to store session", "error", err)
		return state.Failed[user.User](msgSessionSaveFailed)
	}
	return state.Ok(resp.User)
}

// Logout tells the server and clears the local session even when the server
// call fails.
func (c *Controller) Logout(ctx context.Context) state.Result[struct{}] {
	if err := c.svc.Logout(ctx); err != nil {
		c.logger.Warn("server logout failed, clearing local session anyway", "error", err)
	}
	if err := c.session.ClearAuth(ctx); err != nil {
		c.logger.Error("failed to clear session", "error", err)
		return state.Failed[struct{}](internal.ErrorMessage(err, "Failed to clear session"))
	}
	return state.Ok(struct{}{})
}

// Register creates an account. It does not log in.
func (c *Controller) Register(ctx context.Context, dto RegisterDTO) state.Result[user.User] {
	if err := dto.Validate(); err != nil {
		return state.Failed[user.User](err.GetDetailedMessage())
	}
	u, err := c.svc.Register(ctx, dto)
	return resultOf(u, err, msgRegisterFailed)
}

// Refresh reloads the current user from the server and stores it with the
// token already held.
func (c *Controller) Refresh(ctx context.Context) state.Result[user.User] {
	snap := c.session.Snapshot()
	if !snap.IsAuthenticated {
		return state.Failed[user.User](msgNotAuthenticated)
	}

	u, err := c.svc.Me(ctx)
	if err != nil {
		return state.Failed[user.User](internal.ErrorMessage(err, msgSessionLoadFailed))
	}
	if err := c.session.SetAuth(ctx, *u, snap.Token); err != nil {
		c.logger.Error("failed to store refreshed user", "error", err)
		return state.Failed[user.User](msgSessionSaveFailed)
	}
	return state.Ok(*u)
}

func (c *Controller) Current() session.Session {
	return c.session.Snapshot()
}

func resultOf(u *user.User, err error, fallback string) state.Result[user.User] {
	if err != nil {
		return state.Failed[user.User](internal.ErrorMessage(err, fallback))
	}
	return state.Ok(*u)
}
