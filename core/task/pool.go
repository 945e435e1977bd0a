package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/fibr-go/core/mailbox"
)

type (
	// Func is a task body. Returning ErrTerminated (or wrapping it) counts
	// as a clean cancellation; any other error is reported as a failure.
	Func func(*Context) error

	// OnPanic handles a panic escaping a task body.
	OnPanic func(recovered any, stack []byte)
)

// PoolOptions configures a Pool.
type PoolOptions struct {
	// Context stops the pool when cancelled; Go rejects new tasks after that.
	Context context.Context
	Logger  *slog.Logger
	OnPanic OnPanic

	// Metrics instruments the task layer, MailboxMetrics the mailboxes of
	// all slots. Both default to no-ops.
	Metrics        TaskMetrics
	MailboxMetrics mailbox.MailboxMetrics

	// MailboxCapacity is the per-buffer mailbox capacity of every slot.
	// Defaults to mailbox.DefaultCapacity.
	MailboxCapacity int

	// MaxIdle caps the number of parked slots kept for reuse. If 0,
	// defaults to 16; negative disables pooling entirely.
	MaxIdle int
}

// Pool runs task functions on a pool of execution slots. Each slot is
// one runner goroutine owning one [Context]; a parked slot is reused for
// later tasks with a bumped generation, fresh local storage and its
// mailbox kept intact.
type Pool struct {
	id      string
	ctx     context.Context
	log     *slog.Logger
	onPanic OnPanic
	metrics TaskMetrics

	mbOpts  mailbox.Options
	maxIdle int

	mu     sync.Mutex
	idle   []*slot
	seq    int
	active int
	closed bool

	wg sync.WaitGroup
}

// slot couples a context with the work channel feeding its runner.
type slot struct {
	ctx  *Context
	work chan Func
}

// NewPool creates a pool. The zero PoolOptions value gives a background
// context, the default logger, no-op metrics and default capacities.
func NewPool(opt PoolOptions) *Pool {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopTaskMetrics()
	}
	if opt.MailboxMetrics == nil {
		opt.MailboxMetrics = mailbox.NopMetrics()
	}
	if opt.MaxIdle == 0 {
		opt.MaxIdle = 16
	}

	id := fmt.Sprintf("pool-%s", gonanoid.Must(6))
	if opt.OnPanic == nil {
		log := opt.Logger
		opt.OnPanic = func(recovered any, stack []byte) {
			log.Error("task panicked", slog.Any("recovered", recovered), slog.String("stack", string(stack)))
		}
	}

	return &Pool{
		id:      id,
		ctx:     opt.Context,
		log:     opt.Logger.With(slog.String("pool", id)),
		onPanic: opt.OnPanic,
		metrics: opt.Metrics,
		mbOpts: mailbox.Options{
			Capacity: opt.MailboxCapacity,
			Metrics:  opt.MailboxMetrics,
		},
		maxIdle: opt.MaxIdle,
	}
}

// Go runs fn as a new cooperatively scheduled task and returns its
// handle. A parked slot is reused when available; otherwise a new slot
// and runner goroutine are created.
func (p *Pool) Go(fn Func) (Handle, error) {
	if p.ctx.Err() != nil {
		return Handle{}, ErrPoolClosed
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return Handle{}, ErrPoolClosed
	}

	var s *slot
	reused := false
	if n := len(p.idle); n > 0 {
		s = p.idle[n-1]
		p.idle = p.idle[:n-1]
		reused = true
	} else {
		p.seq++
		s = &slot{work: make(chan Func, 1)}
		s.ctx = newContext(fmt.Sprintf("task-%d", p.seq), p.log, p.metrics, p.mbOpts)
	}
	p.active++
	p.metrics.ActiveTasks(p.active)
	p.metrics.IdleSlots(len(p.idle))
	p.mu.Unlock()

	if reused {
		s.ctx.recycle()
	} else {
		p.wg.Add(1)
		go p.run(s)
	}
	p.metrics.TaskStarted(reused)

	h := s.ctx.begin()
	p.log.Debug("task starting", slog.String("task", h.String()), slog.Bool("reused", reused))
	s.work <- fn
	return h, nil
}

// run is the slot's runner goroutine: the owning thread of its context.
// The context never migrates off it.
func (p *Pool) run(s *slot) {
	defer p.wg.Done()

	for fn := range s.work {
		c := s.ctx
		timer := p.metrics.TaskDuration()
		err := p.invoke(c, fn)
		timer.ObserveDuration()

		switch {
		case err == nil:
			p.metrics.TaskCompleted(true)
			c.log.Debug("task finished")
		case errors.Is(err, ErrTerminated):
			p.metrics.TaskCompleted(true)
			c.log.Debug("task terminated")
		default:
			p.metrics.TaskCompleted(false)
			c.log.Warn("task failed", slog.Any("error", err))
		}

		p.mu.Lock()
		p.active--
		p.metrics.ActiveTasks(p.active)
		p.mu.Unlock()

		if !p.park(s) {
			return
		}
	}
}

// invoke runs the task body with crash containment. The context reaches
// its terminal state in the deferred block, so joiners are released even
// when the body panics or exits the goroutine.
func (p *Pool) invoke(c *Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.TaskPanicked()
			p.onPanic(r, debug.Stack())
			err = fmt.Errorf("task panicked: %v", r)
		}
		c.finish()
	}()
	return fn(c)
}

// park returns the slot to the idle list, or retires it when the pool is
// closed or full. Reports whether the runner should keep going.
func (p *Pool) park(s *slot) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.idle) >= p.maxIdle || p.maxIdle < 0 {
		s.ctx.log.Debug("slot retired")
		return false
	}
	p.idle = append(p.idle, s)
	p.metrics.IdleSlots(len(p.idle))
	return true
}

// Close stops accepting tasks and waits for running ones to finish.
// Idempotent. Tasks blocked in a receive are not interrupted; terminate
// them first if the pool should drain promptly.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	for _, s := range idle {
		close(s.work)
	}
	p.wg.Wait()
	p.log.Debug("pool closed")
}
