package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	Describe("New", func() {
		It("should honour the requested format and level", func() {
			var buf bytes.Buffer
			l := logger.New(&buf, "json", "warn")

			l.Info("hidden")
			l.Warn("shown", "key", "value")

			Expect(buf.String()).NotTo(ContainSubstring("hidden"))
			Expect(buf.String()).To(ContainSubstring(`"msg":"shown"`))
			Expect(buf.String()).To(ContainSubstring(`"key":"value"`))
		})

		It("should fall back to info for unknown levels", func() {
			Expect(logger.ParseLevel("verbose")).To(Equal(slog.LevelInfo))
			Expect(logger.ParseLevel("DEBUG")).To(Equal(slog.LevelDebug))
		})
	})

	Describe("context helpers", func() {
		It("should carry the trace id and tag the logger", func() {
			var buf bytes.Buffer
			logger.Setup(&buf, "text", "debug")

			ctx := context.Background()
			Expect(logger.TraceIDFrom(ctx)).To(BeEmpty())

			ctx = logger.WithTraceID(ctx, "trace-1")
			Expect(logger.TraceIDFrom(ctx)).To(Equal("trace-1"))

			logger.From(ctx).Info("hello")
			Expect(buf.String()).To(ContainSubstring("traceID=trace-1"))
		})
	})

	Describe("RedactBody", func() {
		It("should mask nested sensitive JSON keys", func() {
			out := logger.RedactBody([]byte(`{"user":{"email":"a@b.c","password":"hunter22"},"access_token":"abc"}`))
			Expect(out).To(ContainSubstring(`"email":"a@b.c"`))
			Expect(out).NotTo(ContainSubstring("hunter22"))
			Expect(out).NotTo(ContainSubstring(`"abc"`))
		})

		It("should mask sensitive form fields", func() {
			out := logger.RedactBody([]byte("username=alice%40example.com&password=hunter22"))
			Expect(out).To(Equal("username=alice%40example.com&password=[FILTERED]"))
		})

		It("should return empty for empty bodies", func() {
			Expect(logger.RedactBody(nil)).To(BeEmpty())
		})
	})

	Describe("RedactHeaders", func() {
		It("should mask the authorization header", func() {
			h := http.Header{}
			h.Set("Authorization", "Bearer secret")
			h.Set("Accept", "application/json")

			out := logger.RedactHeaders(h)
			Expect(out["Authorization"]).To(Equal("[FILTERED]"))
			Expect(out["Accept"]).To(Equal("application/json"))
		})
	})
})
