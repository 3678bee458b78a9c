// Package sandbox is an in-memory implementation of the project management
// REST API. The console can run it locally and the tests drive the real
// client against it.
package sandbox

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/project-console/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultSecret   = "sandbox-secret"
	DefaultTokenTTL = time.Hour
	APIPrefix       = "/api/v1"
)

type Config struct {
	Secret   string
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.MinCost so tests stay fast.
	BcryptCost int
}

type Server struct {
	*transport.BaseHandler
	tokens     *TokenIssuer
	bcryptCost int
	now        func() time.Time

	mu   sync.RWMutex
	data *data

	faults *faults
	router *chi.Mux
}

func New(cfg Config, logger *slog.Logger) *Server {
	if cfg.Secret == "" {
		cfg.Secret = DefaultSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.MinCost
	}

	s := &Server{
		BaseHandler: transport.NewBaseHandler(logger),
		tokens:      NewTokenIssuer(cfg.Secret, cfg.TokenTTL),
		bcryptCost:  cfg.BcryptCost,
		now:         time.Now,
		data:        newData(),
		faults:      newFaults(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Tokens() *TokenIssuer {
	return s.tokens
}

func (s *Server) today() string {
	return s.now().Format("2006-01-02")
}

func newID() string {
	return uuid.NewString()
}
