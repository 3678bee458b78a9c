package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/auditlog"
	"github.com/frahmantamala/project-console/internal/auth"
	"github.com/frahmantamala/project-console/internal/core/events"
	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/dashboard"
	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/expense"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/session"
	"github.com/frahmantamala/project-console/internal/session/sqlite"
	"github.com/frahmantamala/project-console/internal/task"
	"github.com/frahmantamala/project-console/internal/telemetry"
	"github.com/frahmantamala/project-console/internal/transport/apiclient"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/frahmantamala/project-console/pkg/logger"
	"github.com/spf13/cobra"
)

const loginNotice = "Your session has ended. Please log in again with `project-console login`."

// App holds everything a console command needs, wired once per invocation.
type App struct {
	Config  *internal.Config
	Logger  *slog.Logger
	Bus     *events.EventBus
	Session *session.Store
	Client  *apiclient.Client

	Auth      *auth.Controller
	Users     *user.Service
	Projects  *project.Service
	Documents *document.Service
	Tasks     *task.Service
	Expenses  *expense.Service
	AuditLogs *auditlog.Service
	Dashboard *dashboard.Service

	out      io.Writer
	storage  *sqlite.Storage
	shutdown telemetry.ShutdownFunc
}

func newApp(ctx context.Context, out, errOut io.Writer) (*App, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Setup(errOut, cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	shutdown := telemetry.Setup(ctx, cfg.Observability.Tracing, lg)

	storage, err := sqlite.Open(ctx, cfg.Session.Path, lg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	bus := events.NewEventBus(lg)
	store := session.NewStore(storage, bus, lg)
	if err := store.Init(ctx); err != nil {
		lg.Warn("session restore failed", "error", err)
	}

	var notice sync.Once
	bus.Subscribe(events.EventTypeLoginRequired, func(context.Context, events.Event) error {
		notice.Do(func() { fmt.Fprintln(errOut, loginNotice) })
		return nil
	})

	policy := auth.NewUnauthorizedPolicy(store, bus, lg)
	client := apiclient.NewClient(apiclient.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		TokenSource:    store,
		OnUnauthorized: policy,
	}, lg)

	return &App{
		Config:    cfg,
		Logger:    lg,
		Bus:       bus,
		Session:   store,
		Client:    client,
		Auth:      auth.NewController(auth.NewService(client, cfg.API.LoginStyle, lg), store, lg),
		Users:     user.NewService(client, lg),
		Projects:  project.NewService(client, lg),
		Documents: document.NewService(client, lg),
		Tasks:     task.NewService(client, lg),
		Expenses:  expense.NewService(client, lg),
		AuditLogs: auditlog.NewService(client, lg),
		Dashboard: dashboard.NewService(client, lg),
		out:       out,
		storage:   storage,
		shutdown:  shutdown,
	}, nil
}

// viewOptions are the options every command-scoped view is built with.
func (a *App) viewOptions() []state.Option {
	return []state.Option{state.WithLogger(a.Logger)}
}

func (a *App) Close() {
	a.Bus.Wait()
	if err := a.storage.Close(); err != nil {
		a.Logger.Warn("session store close error", "error", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.Logger.Warn("telemetry shutdown error", "error", err)
	}
}

// withApp wraps a command body with app construction and teardown.
func withApp(run func(ctx context.Context, cmd *cobra.Command, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, err := newApp(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer app.Close()
		return run(ctx, cmd, app, args)
	}
}
