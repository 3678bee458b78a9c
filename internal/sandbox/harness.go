package sandbox

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"sync"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/auth"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
)

// Harness runs a seeded sandbox on a loopback listener with an API client
// pointed at it. Tests use it to drive the real services end to end.
type Harness struct {
	*Server
	HTTP   *httptest.Server
	Client *apiclient.Client

	mu    sync.Mutex
	token string
}

func NewHarness(logger *slog.Logger) (*Harness, error) {
	srv := New(Config{}, logger)
	if err := srv.Seed(); err != nil {
		return nil, err
	}

	h := &Harness{Server: srv, HTTP: httptest.NewServer(srv)}
	h.Client = apiclient.NewClient(apiclient.Config{
		BaseURL:     h.HTTP.URL + APIPrefix,
		TokenSource: apiclient.TokenSourceFunc(h.Token),
	}, logger)
	return h, nil
}

// Login authenticates the harness client as email.
func (h *Harness) Login(ctx context.Context, email, password string) error {
	resp, err := auth.NewService(h.Client, internal.LoginStyleForm, h.Logger).
		Login(ctx, auth.Credentials{Username: email, Password: password})
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.token = resp.AccessToken
	h.mu.Unlock()
	return nil
}

func (h *Harness) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

func (h *Harness) Close() {
	h.HTTP.Close()
}
