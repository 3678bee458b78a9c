package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/project-console/internal/sandbox"
	"github.com/frahmantamala/project-console/internal/telemetry"
	"github.com/frahmantamala/project-console/pkg/logger"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	sandboxAddr   string
	sandboxSecret string
	sandboxSeed   bool
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run an in-memory API backend for local use",
	Long: `Start an in-memory implementation of the project API. Point api.base_url
at http://<addr>/api/v1 to use the console without a real backend.`,
	RunE: runSandbox,
}

func runSandbox(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.Setup(os.Stderr, cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)

	ctx := context.Background()
	shutdownTracing := telemetry.Setup(ctx, cfg.Observability.Tracing, lg)

	srv := sandbox.New(sandbox.Config{Secret: sandboxSecret}, lg)
	if sandboxSeed {
		if err := srv.Seed(); err != nil {
			return fmt.Errorf("seed sandbox: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded accounts %s / %s and %s / %s\n",
			sandbox.AdminEmail, sandbox.AdminPassword, sandbox.MemberEmail, sandbox.MemberPassword)
	}

	server := &http.Server{
		Addr:              sandboxAddr,
		Handler:           otelhttp.NewHandler(srv, "sandbox"),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()
	lg.Info("sandbox listening", "address", sandboxAddr, "api", "http://"+sandboxAddr+sandbox.APIPrefix)

	select {
	case sig := <-sigChan:
		lg.Info("received signal, shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("sandbox shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = shutdownTracing(ctx)
			return fmt.Errorf("sandbox failed: %w", err)
		}
	}

	if err := shutdownTracing(ctx); err != nil {
		lg.Warn("telemetry shutdown error", "error", err)
	}
	lg.Info("sandbox stopped")
	return nil
}

func init() {
	sandboxCmd.Flags().StringVar(&sandboxAddr, "addr", "localhost:8000", "listen address")
	sandboxCmd.Flags().StringVar(&sandboxSecret, "secret", sandbox.DefaultSecret, "JWT signing secret")
	sandboxCmd.Flags().BoolVar(&sandboxSeed, "seed", true, "load demo accounts and a sample project")
}
