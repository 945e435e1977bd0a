package task

import "errors"

var (
	// ErrInterrupted aborts a suspension point after Interrupt was
	// requested. The task may recover and continue.
	ErrInterrupted = errors.New("task: interrupted")
	// ErrTerminated aborts a suspension point after Terminate was
	// requested. It is sticky: every later suspension fails the same way,
	// so the task is expected to unwind.
	ErrTerminated = errors.New("task: terminated")

	// ErrUnsetLocal is returned by Context.Get for a key never set on the
	// current task generation.
	ErrUnsetLocal = errors.New("task: local variable not set")
	// ErrLocalType is returned by Local when the stored value has a
	// different type than requested.
	ErrLocalType = errors.New("task: local variable type mismatch")

	// ErrNoTask is returned when operating on the zero Handle.
	ErrNoTask = errors.New("task: no task")
	// ErrNotRunning is returned when the handle's generation no longer
	// occupies its context (the task finished or the slot was reused).
	ErrNotRunning = errors.New("task: task not running")
	// ErrJoinSelf is returned by Join on the caller's own context.
	ErrJoinSelf = errors.New("task: join on own context")

	// ErrPoolClosed is returned by Pool.Go after Close.
	ErrPoolClosed = errors.New("task: pool closed")
)
