package task

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/codewandler/fibr-go/core/mailbox"
)

// Context is the execution context of one slot in a [Pool]. A context
// belongs to exactly one runner goroutine for its entire life and is
// reused for successive logical tasks, distinguished by a generation
// counter. Mailbox receive operations and local storage are for the
// owning task only; other tasks interact through a [Handle].
type Context struct {
	id      string
	log     *slog.Logger
	metrics TaskMetrics
	mbox    *mailbox.Mailbox

	mu          sync.Mutex
	gen         uint64
	running     bool
	done        chan struct{}
	locals      map[string]any
	interrupted bool
	terminated  bool

	// wake unblocks a Join wait when a signal arrives; capacity 1 so
	// delivery never blocks the signalling side.
	wake chan struct{}
}

func newContext(id string, log *slog.Logger, metrics TaskMetrics, mbOpts mailbox.Options) *Context {
	c := &Context{
		id:      id,
		log:     log.With(slog.String("task", id)),
		metrics: metrics,
		gen:     1,
		done:    make(chan struct{}),
		locals:  make(map[string]any),
		wake:    make(chan struct{}, 1),
	}
	mbOpts.Signal = c.takeSignal
	c.mbox = mailbox.New(mbOpts)
	return c
}

// ID returns the stable identifier of the underlying slot. It does not
// change on reuse; use [Context.Handle] for task identity.
func (c *Context) ID() string { return c.id }

// Handle returns the handle of the task currently occupying this
// context. Inside a task function this is the task's own identity.
func (c *Context) Handle() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Handle{ctx: c, gen: c.gen}
}

// Mailbox exposes the context's mailbox, e.g. for Clear or depth
// inspection by the owning task.
func (c *Context) Mailbox() *mailbox.Mailbox { return c.mbox }

// Receive blocks the calling task until a pending message matches one
// of the handlers. It fails with ErrInterrupted or ErrTerminated when a
// signal is delivered while the call would suspend.
func (c *Context) Receive(handlers ...mailbox.Handler) error {
	return c.mbox.Receive(handlers...)
}

// ReceiveTimeout is Receive bounded by a deadline fixed at call entry.
// It reports whether a message was consumed.
func (c *Context) ReceiveTimeout(d time.Duration, handlers ...mailbox.Handler) (bool, error) {
	return c.mbox.ReceiveTimeout(d, handlers...)
}

// Join blocks until the target task reaches a terminal state. Returns
// nil immediately when the handle is already stale or terminal. Joining
// the caller's own context is a usage error.
func (c *Context) Join(target Handle) error {
	if target.ctx == nil {
		return ErrNoTask
	}
	if target.ctx == c {
		return ErrJoinSelf
	}

	done := target.Done()
	for {
		select {
		case <-done:
			return nil
		case <-c.wake:
			if err := c.takeSignal(); err != nil {
				return err
			}
		}
	}
}

// takeSignal reports a pending signal of the current task, consuming an
// interrupt (one-shot) and leaving terminate sticky. It is the mailbox's
// suspension probe.
func (c *Context) takeSignal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrTerminated
	}
	if c.interrupted {
		c.interrupted = false
		return ErrInterrupted
	}
	return nil
}

// deliver sets a signal flag for the given generation and wakes the
// task's suspension points. Stale generations are rejected.
func (c *Context) deliver(gen uint64, terminate bool) error {
	c.mu.Lock()
	if !c.running || c.gen != gen {
		c.mu.Unlock()
		return ErrNotRunning
	}
	if terminate {
		c.terminated = true
	} else {
		c.interrupted = true
	}
	c.mu.Unlock()

	// Rouse a blocked receive and a blocked join. The flag is set before
	// the wake-up, so a woken waiter always observes it.
	c.mbox.Wake()
	select {
	case c.wake <- struct{}{}:
	default:
	}

	if terminate {
		c.metrics.TaskTerminated()
	} else {
		c.metrics.TaskInterrupted()
	}
	return nil
}

// begin marks the context running for its current generation and returns
// the new task's handle. Called by the pool before the task function runs.
func (c *Context) begin() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	return Handle{ctx: c, gen: c.gen}
}

// finish marks the current generation terminal and releases joiners.
func (c *Context) finish() {
	c.mu.Lock()
	c.running = false
	done := c.done
	c.mu.Unlock()
	close(done)
}

// recycle prepares the slot for a new logical task: generation bump,
// fresh local storage and done channel, signals cleared. The mailbox is
// intentionally kept, pending messages included.
func (c *Context) recycle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.locals = make(map[string]any)
	c.done = make(chan struct{})
	c.interrupted = false
	c.terminated = false

	select {
	case <-c.wake:
	default:
	}
}

func (c *Context) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("%s#%d", c.id, c.gen)
}
