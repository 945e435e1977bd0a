// Package task provides task identity and lifecycle for a cooperative
// concurrency runtime: execution contexts with generation-counted
// handles, per-task local storage, selective-receive mailboxes and a
// slot pool that recycles execution contexts across logical tasks.
//
// # Contexts and Handles
//
// Every task runs on a [Context], an execution slot owned by exactly one
// runner goroutine for its entire life. The spawned function receives
// its context and derives its own identity from it:
//
//	h, _ := pool.Go(func(tc *task.Context) error {
//	    self := tc.Handle()
//	    return tc.Receive(mailbox.On(func(req Request) { ... }))
//	})
//
// A [Handle] is an immutable, comparable (context, generation) pair.
// When a slot is reused for a new logical task its generation counter is
// bumped, so handles captured before the reuse compare unequal to fresh
// ones and report Running() == false. The zero Handle means "no task".
//
// # Local Storage
//
// Each context carries a string-keyed heterogeneous store. Reading an
// unset key is an error ([ErrUnsetLocal]), not a default value; the
// store is cleared whenever the slot is recycled. [Local] retrieves a
// value with its exact stored type.
//
// # Signals
//
// [Handle.Interrupt] and [Handle.Terminate] are requests observed by the
// target only at its next suspension point (a blocked receive or join):
// the pending operation fails with [ErrInterrupted] or [ErrTerminated]
// instead of completing. Interrupt is one-shot and may be caught;
// terminate is sticky and ends the task. Neither preempts running code.
//
// # Pool
//
// [Pool.Go] runs a function as a new task, reusing a parked slot when
// one is available. The slot's mailbox persists across reuse unless
// explicitly cleared; local storage and pending signals do not.
package task
