package auth

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/frahmantamala/project-console/internal/core/events"
	"github.com/frahmantamala/project-console/internal/session"
)

const ReasonUnauthorized = "unauthorized"

// UnauthorizedPolicy is the client's reaction to a 401: drop the session and
// ask for the login screen.
type UnauthorizedPolicy struct {
	session session.Manager
	bus     events.Publisher
	logger  *slog.Logger
	fired   atomic.Int64
}

func NewUnauthorizedPolicy(sess session.Manager, bus events.Publisher, logger *slog.Logger) *UnauthorizedPolicy {
	return &UnauthorizedPolicy{
		session: sess,
		bus:     bus,
		logger:  logger,
	}
}

// HandleUnauthorized satisfies apiclient.UnauthorizedHandler.
func (p *UnauthorizedPolicy) HandleUnauthorized(ctx context.Context) {
	p.fired.Add(1)
	if err := p.session.ClearAuth(ctx); err != nil {
		p.logger.Error("failed to clear session after 401", "error", err)
	}
	if p.bus == nil {
		return
	}
	if err := p.bus.PublishSync(ctx, events.NewLoginRequiredEvent(ReasonUnauthorized)); err != nil {
		p.logger.Warn("login required handlers failed", "error", err)
	}
}

// Fired reports how many 401 responses were handled.
func (p *UnauthorizedPolicy) Fired() int64 {
	return p.fired.Load()
}
