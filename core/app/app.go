// Package app wires a task pool together with logging and metrics
// behind a single config struct, for programs that want the runtime
// ready-made instead of assembling the pieces themselves.
package app

import (
	"context"
	"fmt"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/fibr-go/core/mailbox"
	"github.com/codewandler/fibr-go/core/task"
)

// Config configures an App. Zero values get sensible defaults.
type Config struct {
	Context context.Context
	Log     *slog.Logger

	// ID names the app in log lines. Defaults to a generated id.
	ID string

	Metrics        task.TaskMetrics
	MailboxMetrics mailbox.MailboxMetrics

	// MailboxCapacity is the per-buffer capacity of every task mailbox.
	MailboxCapacity int
	// MaxIdle caps the parked slots kept for reuse.
	MaxIdle int
}

// App owns a task pool and its wiring.
type App struct {
	id        string
	ctx       context.Context
	cancelCtx context.CancelFunc
	log       *slog.Logger
	pool      *task.Pool
}

// New builds an App from config.
func New(config Config) *App {
	if config.ID == "" {
		config.ID = fmt.Sprintf("app-%s", gonanoid.Must(6))
	}
	if config.Log == nil {
		config.Log = slog.Default()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	a := &App{id: config.ID}
	a.log = config.Log.With(slog.String("app", a.id))
	a.ctx, a.cancelCtx = context.WithCancel(config.Context)

	a.pool = task.NewPool(task.PoolOptions{
		Context:         a.ctx,
		Logger:          a.log,
		Metrics:         config.Metrics,
		MailboxMetrics:  config.MailboxMetrics,
		MailboxCapacity: config.MailboxCapacity,
		MaxIdle:         config.MaxIdle,
	})

	a.log.Debug("app created")
	return a
}

// ID returns the app identifier.
func (a *App) ID() string { return a.id }

// Pool returns the underlying task pool.
func (a *App) Pool() *task.Pool { return a.pool }

// Go runs fn as a new task on the app's pool.
func (a *App) Go(fn task.Func) (task.Handle, error) {
	return a.pool.Go(fn)
}

// Stop cancels the app context and waits for running tasks.
func (a *App) Stop() {
	a.cancelCtx()
	a.pool.Close()
	a.log.Info("app stopped")
}
