package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/project-console/internal/transport"
	"github.com/frahmantamala/project-console/internal/transport/middleware"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

type stubValidator struct {
	principal *middleware.Principal
}

func (s stubValidator) ValidateToken(token string) (*middleware.Principal, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.principal, nil
}

var _ = Describe("Middleware", func() {
	var (
		base *transport.BaseHandler
		seen *middleware.Principal
		ok   http.Handler
	)

	BeforeEach(func() {
		base = transport.NewBaseHandler(logger.Discard())
		seen = nil
		ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.PrincipalFrom(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(h http.Handler, authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	Describe("Authenticate", func() {
		var handler http.Handler

		BeforeEach(func() {
			validator := stubValidator{principal: &middleware.Principal{UserID: "u1", Role: "member"}}
			handler = middleware.Authenticate(validator, base)(ok)
		})

		It("answers 401 without a bearer token", func() {
			// When
			rec := serve(handler, "")

			// Then
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("Not authenticated"))
		})

		It("answers 401 for a token the validator refuses", func() {
			// When
			rec := serve(handler, "Bearer bad")

			// Then
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("Could not validate credentials"))
		})

		It("passes the principal on", func() {
			// When
			rec := serve(handler, "Bearer good")

			// Then
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(seen.UserID).To(Equal("u1"))
		})
	})

	Describe("RequireRole", func() {
		It("forbids principals without the role", func() {
			// Given
			validator := stubValidator{principal: &middleware.Principal{UserID: "u1", Role: "member"}}
			handler := middleware.Authenticate(validator, base)(middleware.RequireRole(base, "admin")(ok))

			// When
			rec := serve(handler, "Bearer good")

			// Then
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring("Not enough permissions"))
		})

		It("admits principals with the role", func() {
			// Given
			validator := stubValidator{principal: &middleware.Principal{UserID: "a1", Role: "admin"}}
			handler := middleware.Authenticate(validator, base)(middleware.RequireRole(base, "admin")(ok))

			// When
			rec := serve(handler, "Bearer good")

			// Then
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("RequestID", func() {
		It("echoes the caller's trace id", func() {
			// Given
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.TraceHeader, "trace-1")
			rec := httptest.NewRecorder()

			// When
			middleware.RequestID(ok).ServeHTTP(rec, req)

			// Then
			Expect(rec.Header().Get(middleware.TraceHeader)).To(Equal("trace-1"))
		})

		It("mints one when absent", func() {
			// When
			rec := serve(middleware.RequestID(ok), "")

			// Then
			Expect(rec.Header().Get(middleware.TraceHeader)).NotTo(BeEmpty())
		})
	})

	Describe("RecoveryMiddleware", func() {
		It("turns a panic into a 500", func() {
			// Given
			boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

			// When
			rec := serve(middleware.RecoveryMiddleware(logger.Discard())(boom), "")

			// Then
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).To(ContainSubstring("Internal server error"))
		})

		It("lets aborted handlers abort", func() {
			// Given
			abort := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })

			// Then
			Expect(func() {
				serve(middleware.RecoveryMiddleware(logger.Discard())(abort), "")
			}).To(PanicWith(http.ErrAbortHandler))
		})
	})
})
