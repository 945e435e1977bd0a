// Package mailbox implements an actor-style inbox with selective receive.
//
// A Mailbox holds two bounded FIFO buffers: a priority buffer and a
// normal buffer, 32 entries each by default. [Mailbox.Send] appends to
// the normal buffer, [Mailbox.PrioritySend] to the priority buffer;
// both fail with [ErrMailboxFull] past capacity instead of blocking or
// dropping.
//
// # Selective Receive
//
// [Mailbox.Receive] consumes the first pending message that matches one
// of the given handlers, out of order if necessary. On every attempt it
// scans the priority buffer oldest-first, then the normal buffer, trying
// the handlers in declared order per message. Messages that match no
// handler are skipped in place and stay buffered for a later call with
// different handlers, so receive is deliberately not strict FIFO.
// If nothing matches, the caller suspends until a send or [Mailbox.Clear]
// and then rescans the full buffer contents.
//
// Handlers are built with the generic constructors:
//
//	mb.Receive(
//	    mailbox.On(func(req WorkRequest) { ... }),
//	    mailbox.OnMatch(func(n int) bool { return n > 0 }), // may veto
//	    mailbox.On2(func(id string, n int) { ... }),        // tuple sends
//	)
//
// [OnMatch] handlers return whether they actually consumed the message;
// a false return leaves the message buffered. [On2] matches messages
// enqueued by a multi-value Send, e.g. mb.Send("job-1", 3).
//
// [Mailbox.ReceiveTimeout] runs the same algorithm against a deadline
// fixed at call entry; on timeout it reports false with the buffers
// untouched. Spurious wake-ups never move the deadline.
//
// # Concurrency
//
// Senders may call Send/PrioritySend from any goroutine. Receive,
// ReceiveTimeout and Clear are meant for the owning task only. Handler
// functions run while the mailbox lock is held and must not call back
// into the same mailbox.
package mailbox
