package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/auth"
	"github.com/frahmantamala/project-console/internal/core/events"
	"github.com/frahmantamala/project-console/internal/session"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

const validPassword = "secret123"

// authServer answers the auth endpoints the way the backend does.
type authServer struct {
	loginCalls  int32
	logoutCalls int32
	logoutFails bool
	lastForm    url.Values
	lastJSON    map[string]string
}

func (a *authServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/auth/login":
		atomic.AddInt32(&a.loginCalls, 1)
		var username, password string
		if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
			_ = r.ParseForm()
			a.lastForm = r.PostForm
			username, password = r.PostForm.Get("username"), r.PostForm.Get("password")
		} else {
			raw, _ := io.ReadAll(r.Body)
			a.lastJSON = map[string]string{}
			_ = json.Unmarshal(raw, &a.lastJSON)
			username, password = a.lastJSON["email"], a.lastJSON["password"]
		}
		if username != "a@b.com" || password != validPassword {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","user":{"id":"u1","name":"Ann","email":"a@b.com","role":"member","is_active":true}}`))
	case "/api/v1/auth/logout":
		atomic.AddInt32(&a.logoutCalls, 1)
		if a.logoutFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case "/api/v1/auth/register":
		var body map[string]string
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		if body["email"] == "a@b.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Email already registered"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"u2","name":"Bob","email":"bob@b.com","role":"member","is_active":true}`))
	case "/api/v1/auth/me":
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","name":"Ann Renamed","email":"a@b.com","role":"member","is_active":true}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

var _ = Describe("Controller", func() {
	var (
		ctx          context.Context
		backend      *authServer
		server       *httptest.Server
		store        *session.Store
		bus          *events.EventBus
		policy       *auth.UnauthorizedPolicy
		loginPrompts int32
		controller   *auth.Controller
		loginStyle   string
	)

	build := func() {
		client := apiclient.NewClient(apiclient.Config{
			BaseURL:        server.URL + "/api/v1",
			TokenSource:    store,
			OnUnauthorized: policy,
		}, logger.Discard())
		svc := auth.NewService(client, loginStyle, logger.Discard())
		controller = auth.NewController(svc, store, logger.Discard())
	}

	BeforeEach(func() {
		ctx = context.Background()
		backend = &authServer{}
		server = httptest.NewServer(backend)
		DeferCleanup(server.Close)

		bus = events.NewEventBus(logger.Discard())
		atomic.StoreInt32(&loginPrompts, 0)
		bus.Subscribe(events.EventTypeLoginRequired, func(context.Context, events.Event) error {
			atomic.AddInt32(&loginPrompts, 1)
			return nil
		})

		store = session.NewStore(session.NewMemoryStorage(), bus, logger.Discard())
		Expect(store.Init(ctx)).To(Succeed())
		policy = auth.NewUnauthorizedPolicy(store, bus, logger.Discard())
		loginStyle = internal.LoginStyleForm
		build()
	})

	Describe("Login", func() {
		It("posts form credentials and stores the session", func() {
			// When
			res := controller.Login(ctx, auth.Credentials{Username: "a@b.com", Password: validPassword})

			// Then
			Expect(res.Success).To(BeTrue())
			Expect(res.Data.ID).To(Equal("u1"))
			Expect(backend.lastForm.Get("username")).To(Equal("a@b.com"))

			snap := store.Snapshot()
			Expect(snap.IsAuthenticated).To(BeTrue())
			Expect(snap.Token).To(Equal("tok-1"))
		})

		It("posts JSON email and password when configured", func() {
			loginStyle = internal.LoginStyleJSON
			build()

			res := controller.Login(ctx, auth.Credentials{Username: "a@b.com", Password: validPassword})

			Expect(res.Success).To(BeTrue())
			Expect(backend.lastJSON).To(HaveKeyWithValue("email", "a@b.com"))
		})

		It("reports bad credentials and leaves the session unauthenticated", func() {
			// When
			res := controller.Login(ctx, auth.Credentials{Username: "a@b.com", Password: "badpass"})

			// Then
			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(Equal("Invalid credentials"))
			Expect(store.Snapshot().IsAuthenticated).To(BeFalse())
			Expect(policy.Fired()).To(BeEquivalentTo(1))
			Expect(atomic.LoadInt32(&loginPrompts)).To(BeEquivalentTo(1))
		})

		It("validates before calling the server", func() {
			res := controller.Login(ctx, auth.Credentials{Username: "a@b.com"})

			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(ContainSubstring("password"))
			Expect(atomic.LoadInt32(&backend.loginCalls)).To(BeZero())
		})

		It("falls back to a generic message when the server is unreachable", func() {
			server.Close()

			res := controller.Login(ctx, auth.Credentials{Username: "a@b.com", Password: validPassword})

			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(Equal("Login failed"))
		})
	})

	Describe("401 handling", func() {
		It("clears the session and prompts for login exactly once", func() {
			// Given
			Expect(store.SetAuth(ctx, user.User{ID: "u1", Email: "a@b.com"}, "stale-token")).To(Succeed())

			// When
			res := controller.Refresh(ctx)

			// Then
			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(Equal("Could not validate credentials"))
			Expect(store.Snapshot().IsAuthenticated).To(BeFalse())
			Expect(policy.Fired()).To(BeEquivalentTo(1))
			Expect(atomic.LoadInt32(&loginPrompts)).To(BeEquivalentTo(1))
		})
	})

	Describe("Logout", func() {
		BeforeEach(func() {
			Expect(controller.Login(ctx, auth.Credentials{Username: "a@b.com", Password: validPassword}).Success).To(BeTrue())
		})

		It("clears the session", func() {
			Expect(controller.Logout(ctx).Success).To(BeTrue())
			Expect(store.Snapshot().IsAuthenticated).To(BeFalse())
			Expect(atomic.LoadInt32(&backend.logoutCalls)).To(BeEquivalentTo(1))
		})

		It("clears the session even when the server call fails", func() {
			backend.logoutFails = true

			Expect(controller.Logout(ctx).Success).To(BeTrue())
			Expect(store.Snapshot().IsAuthenticated).To(BeFalse())
		})
	})

	Describe("Register", func() {
		It("returns the created user without logging in", func() {
			res := controller.Register(ctx, auth.RegisterDTO{Name: "Bob", Email: "bob@b.com", Password: "password1"})

			Expect(res.Success).To(BeTrue())
			Expect(res.Data.ID).To(Equal("u2"))
			Expect(store.Snapshot().IsAuthenticated).To(BeFalse())
		})

		It("reports the server message when the email is taken", func() {
			// When
			res := controller.Register(ctx, auth.RegisterDTO{Name: "Ann", Email: "a@b.com", Password: "password1"})

			// Then
			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(Equal("Email already registered"))
			Expect(store.Snapshot().IsAuthenticated).To(BeFalse())
		})

		It("rejects a weak password", func() {
			res := controller.Register(ctx, auth.RegisterDTO{Name: "Bob", Email: "bob@b.com", Password: "short"})

			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(ContainSubstring("password"))
		})
	})

	Describe("Refresh", func() {
		It("stores the reloaded user with the current token", func() {
			Expect(controller.Login(ctx, auth.Credentials{Username: "a@b.com", Password: validPassword}).Success).To(BeTrue())

			res := controller.Refresh(ctx)

			Expect(res.Success).To(BeTrue())
			snap := store.Snapshot()
			Expect(snap.User.Name).To(Equal("Ann Renamed"))
			Expect(snap.Token).To(Equal("tok-1"))
		})

		It("refuses without a session", func() {
			Expect(controller.Refresh(ctx).Error).To(Equal("Not logged in"))
		})
	})
})
