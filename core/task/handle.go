package task

import "fmt"

// closedDone is returned by Handle.Done for stale handles.
var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Handle is an immutable, copyable reference to a task: the execution
// context plus a snapshot of its generation counter. Two handles are
// equal iff they reference the same context and the same generation, so
// a handle taken before a slot reuse never aliases the new occupant.
// The zero Handle references no task.
type Handle struct {
	ctx *Context
	gen uint64
}

// Equal reports identity-plus-generation equality. Handle is comparable,
// so h == o works too.
func (h Handle) Equal(o Handle) bool { return h == o }

// Running reports whether the referenced context still executes this
// same logical task: not terminal, and the generation unchanged. False
// for the zero Handle, for finished tasks and for reused slots.
func (h Handle) Running() bool {
	if h.ctx == nil {
		return false
	}
	h.ctx.mu.Lock()
	defer h.ctx.mu.Unlock()
	return h.ctx.running && h.ctx.gen == h.gen
}

// Done returns a channel closed when the referenced task reaches a
// terminal state. For the zero Handle or a recycled slot the channel is
// already closed.
func (h Handle) Done() <-chan struct{} {
	if h.ctx == nil {
		return closedDone
	}
	h.ctx.mu.Lock()
	defer h.ctx.mu.Unlock()
	if h.ctx.gen != h.gen {
		return closedDone
	}
	return h.ctx.done
}

// Send appends a message to the task's normal mailbox buffer. Multiple
// values enqueue one tuple message. Fails with ErrNotRunning when the
// task finished or its slot was reused.
func (h Handle) Send(vals ...any) error {
	if err := h.check(); err != nil {
		return err
	}
	return h.ctx.mbox.Send(vals...)
}

// PrioritySend appends a message to the task's priority buffer, which is
// considered before the normal buffer on every receive scan.
func (h Handle) PrioritySend(vals ...any) error {
	if err := h.check(); err != nil {
		return err
	}
	return h.ctx.mbox.PrioritySend(vals...)
}

// Interrupt requests that the task's next (or currently pending)
// suspension fails with ErrInterrupted. Asynchronous: running code is
// not preempted, and the request is lost if the task never suspends
// again.
func (h Handle) Interrupt() error {
	if h.ctx == nil {
		return ErrNoTask
	}
	return h.ctx.deliver(h.gen, false)
}

// Terminate requests unconditional cancellation at the task's next
// suspension point. Unlike Interrupt the signal is sticky; the task is
// not expected to continue past it.
func (h Handle) Terminate() error {
	if h.ctx == nil {
		return ErrNoTask
	}
	return h.ctx.deliver(h.gen, true)
}

func (h Handle) check() error {
	if h.ctx == nil {
		return ErrNoTask
	}
	if !h.Running() {
		return ErrNotRunning
	}
	return nil
}

func (h Handle) String() string {
	if h.ctx == nil {
		return "task:none"
	}
	return fmt.Sprintf("%s#%d", h.ctx.id, h.gen)
}
