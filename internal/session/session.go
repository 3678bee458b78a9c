package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/events"
	"github.com/frahmantamala/project-console/internal/user"
)

// Keys under which the session lives in Storage. They are always written
// and removed together.
const (
	TokenKey = "access_token"
	UserKey  = "user"
)

const (
	reasonClearAuth      = "clear_auth"
	reasonInvalidSession = "invalid_persisted_session"
)

type Session struct {
	User            *user.User `json:"user"`
	Token           string     `json:"-"`
	IsAuthenticated bool       `json:"is_authenticated"`
}

// Storage persists the session between runs. SetMany and Remove must be
// all-or-nothing.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}

// Manager is the session surface the rest of the client depends on.
type Manager interface {
	Init(ctx context.Context) error
	SetAuth(ctx context.Context, u user.User, token string) error
	ClearAuth(ctx context.Context) error
	Snapshot() Session
	Token() string
}

// Store is the process-wide session. Memory only changes after Storage
// accepted the write, so both always agree.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	bus     events.Publisher
	logger  *slog.Logger
	now     func() time.Time

	user  *user.User
	token string
}

var _ Manager = (*Store)(nil)

// NewStore builds an empty, unauthenticated session. bus may be nil.
func NewStore(storage Storage, bus events.Publisher, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		bus:     bus,
		logger:  logger,
		now:     time.Now,
	}
}

// Init restores the persisted session. Values that cannot be used (a lone
// token or user, unparseable user JSON, an expired JWT) are purged and the
// session stays unauthenticated. If the purge fails memory is left as it was.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		return storageError("failed to read session token", err)
	}
	raw, hasUser, err := s.storage.Get(ctx, UserKey)
	if err != nil {
		return storageError("failed to read session user", err)
	}

	if !hasToken && !hasUser {
		s.user, s.token = nil, ""
		return nil
	}

	u, reason := s.restore(token, raw, hasToken, hasUser)
	if u != nil {
		s.user, s.token = u, token
		s.logger.Debug("session restored", "user_id", u.ID)
		return nil
	}

	s.logger.Info("purging persisted session", "reason", reason)
	if err := s.storage.Remove(ctx, TokenKey, UserKey); err != nil {
		return storageError("failed to purge session", err)
	}
	s.user, s.token = nil, ""
	s.publish(ctx, events.NewSessionClearedEvent(reasonInvalidSession))
	return nil
}

func (s *Store) restore(token, raw string, hasToken, hasUser bool) (*user.User, string) {
	if !hasToken || token == "" {
		return nil, "missing token"
	}
	if !hasUser {
		return nil, "missing user"
	}
	if exp, ok := TokenExpiry(token); ok && !exp.After(s.now()) {
		return nil, "token expired"
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, "unparseable user"
	}
	if u.ID == "" {
		return nil, "user without id"
	}
	return &u, ""
}

// SetAuth persists user and token together and then marks the session
// authenticated.
func (s *Store) SetAuth(ctx context.Context, u user.User, token string) error {
	if token == "" {
		return errors.NewValidationFieldError("token", "token is required", errors.ErrCodeRequired)
	}
	if u.ID == "" {
		return errors.NewValidationFieldError("user", "user id is required", errors.ErrCodeRequired)
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return errors.NewInternalError("failed to encode session user", err)
	}

	s.mu.Lock()
	if err := s.storage.SetMany(ctx, map[string]string{TokenKey: token, UserKey: string(raw)}); err != nil {
		s.mu.Unlock()
		return storageError("failed to persist session", err)
	}
	s.user, s.token = &u, token
	s.mu.Unlock()

	s.logger.Info("session authenticated", "user_id", u.ID)
	s.publish(ctx, events.NewSessionAuthenticatedEvent(u.ID, u.Email))
	return nil
}

// ClearAuth removes the persisted session and then marks it unauthenticated.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.mu.Lock()
	if err := s.storage.Remove(ctx, TokenKey, UserKey); err != nil {
		s.mu.Unlock()
		return storageError("failed to clear session", err)
	}
	wasAuthenticated := s.token != ""
	s.user, s.token = nil, ""
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info("session cleared")
		s.publish(ctx, events.NewSessionClearedEvent(reasonClearAuth))
	}
	return nil
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.token == "" {
		return Session{}
	}
	u := *s.user
	return Session{User: &u, Token: s.token, IsAuthenticated: true}
}

// Token satisfies apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish session event", "event_type", event.EventType(), "error", err)
	}
}

func storageError(message string, cause error) *errors.AppError {
	return &errors.AppError{
		Type:    errors.ErrorTypeInternal,
		Code:    errors.ErrCodeStorage,
		Message: message,
		Cause:   cause,
	}
}
