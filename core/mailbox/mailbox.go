package mailbox

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/codewandler/fibr-go/core/ds"
	"github.com/codewandler/fibr-go/core/reflector"
)

// DefaultCapacity is the per-buffer capacity used when Options.Capacity
// is zero. Exceeding it is a send error, not backpressure.
const DefaultCapacity = 32

var (
	// ErrMailboxFull is returned by Send/PrioritySend when the target
	// buffer is at capacity.
	ErrMailboxFull = errors.New("mailbox full")
	// ErrNoMessage is returned by a Send call with no values.
	ErrNoMessage = errors.New("empty send")
	// ErrNoHandler is returned by Receive/ReceiveTimeout when called
	// without handlers; such a call could never complete.
	ErrNoHandler = errors.New("no handlers given")
)

// Options configures a Mailbox.
type Options struct {
	// Capacity is the size of each buffer. Defaults to DefaultCapacity.
	Capacity int
	// Signal is probed before the receiving side suspends and after every
	// wake-up. A non-nil error (the owner's pending interrupt or terminate)
	// aborts the receive with that error. May be nil.
	Signal func() error
	// Metrics receives mailbox instrumentation. Defaults to NopMetrics.
	Metrics MailboxMetrics
}

// Mailbox is a task inbox split into a priority and a normal FIFO buffer.
type Mailbox struct {
	mu   sync.Mutex
	cond *sync.Cond
	prio *ds.Ring[any]
	norm *ds.Ring[any]

	signal  func() error
	metrics MailboxMetrics
}

// New creates an empty mailbox.
func New(opt Options) *Mailbox {
	if opt.Capacity <= 0 {
		opt.Capacity = DefaultCapacity
	}
	if opt.Metrics == nil {
		opt.Metrics = NopMetrics()
	}

	m := &Mailbox{
		prio:    ds.NewRing[any](opt.Capacity),
		norm:    ds.NewRing[any](opt.Capacity),
		signal:  opt.Signal,
		metrics: opt.Metrics,
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// tuple wraps the values of a multi-value send into a single message.
type tuple []any

// wrap turns the arguments of a send into one message.
func wrap(vals []any) (any, error) {
	switch len(vals) {
	case 0:
		return nil, ErrNoMessage
	case 1:
		return vals[0], nil
	default:
		return tuple(vals), nil
	}
}

// Send appends a message to the normal buffer and wakes one waiter.
// More than one value enqueues a tuple message matched by [On2].
func (m *Mailbox) Send(vals ...any) error {
	return m.push(false, vals)
}

// PrioritySend appends a message to the priority buffer and wakes one
// waiter. Priority messages are considered before any normal message on
// every receive scan, regardless of arrival time.
func (m *Mailbox) PrioritySend(vals ...any) error {
	return m.push(true, vals)
}

func (m *Mailbox) push(priority bool, vals []any) error {
	msg, err := wrap(vals)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	buf := m.norm
	if priority {
		buf = m.prio
	}
	if !buf.Push(msg) {
		m.metrics.Rejected(priority)
		return fmt.Errorf("%w: %s", ErrMailboxFull, reflector.NameOf(msg))
	}
	m.metrics.Sent(priority)
	m.metrics.Depth(priority, buf.Len())
	m.cond.Signal()
	return nil
}

// Receive blocks until one pending message matches one of the handlers,
// consumes it and returns nil. It aborts with the Signal error when the
// owner has a pending interrupt or terminate and the call would suspend.
func (m *Mailbox) Receive(handlers ...Handler) error {
	if len(handlers) == 0 {
		return ErrNoHandler
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if m.matchLocked(handlers) {
			return nil
		}
		if err := m.pending(); err != nil {
			return err
		}
		m.cond.Wait()
	}
}

// ReceiveTimeout is Receive bounded by a deadline computed once at call
// entry. It reports whether a message was consumed; on timeout the
// buffers are unchanged. A non-positive duration polls once.
func (m *Mailbox) ReceiveTimeout(d time.Duration, handlers ...Handler) (bool, error) {
	if len(handlers) == 0 {
		return false, ErrNoHandler
	}

	deadline := time.Now().Add(d)
	if d > 0 {
		t := time.AfterFunc(d, m.Wake)
		defer t.Stop()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if m.matchLocked(handlers) {
			return true, nil
		}
		if err := m.pending(); err != nil {
			return false, err
		}
		if !time.Now().Before(deadline) {
			m.metrics.TimedOut()
			return false, nil
		}
		m.cond.Wait()
	}
}

func (m *Mailbox) pending() error {
	if m.signal == nil {
		return nil
	}
	return m.signal()
}

// matchLocked runs one full scan: priority buffer first, oldest first,
// handlers in declared order per message. Returns true once a handler
// consumed a message; non-matching messages are left in place.
func (m *Mailbox) matchLocked(handlers []Handler) bool {
	skipped := 0
	for _, buf := range []*ds.Ring[any]{m.prio, m.norm} {
		for i := 0; i < buf.Len(); i++ {
			msg := buf.At(i)
			if offer(msg, handlers) {
				buf.RemoveAt(i)
				m.metrics.Depth(buf == m.prio, buf.Len())
				m.metrics.Matched(skipped)
				return true
			}
			skipped++
		}
	}
	return false
}

// offer tries each handler against msg in declared order. Reports whether
// one of them consumed it.
func offer(msg any, handlers []Handler) bool {
	for _, h := range handlers {
		matched, consumed := h.try(msg)
		if matched && consumed {
			return true
		}
		// A vetoing handler leaves the message for the remaining handlers.
	}
	return false
}

// Clear empties both buffers and wakes all waiters. A waiter woken by
// Clear observes no match and suspends again (or keeps counting down its
// deadline); it never reports a spurious match.
func (m *Mailbox) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prio.Clear()
	m.norm.Clear()
	m.metrics.Depth(true, 0)
	m.metrics.Depth(false, 0)
	m.metrics.Cleared()
	m.cond.Broadcast()
}

// Wake rouses all blocked receivers without modifying the buffers. The
// owning task's context uses it to deliver interrupt and terminate
// signals into a blocked receive.
func (m *Mailbox) Wake() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cond.Broadcast()
}

// Len returns the current depth of the priority and normal buffers.
func (m *Mailbox) Len() (priority, normal int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prio.Len(), m.norm.Len()
}
