package mailbox

// MailboxMetrics defines the metrics interface for the mailbox layer.
// All methods must be thread-safe; they are called under the mailbox lock.
type MailboxMetrics interface {
	// Sent is called after a message was buffered.
	Sent(priority bool)
	// Rejected is called when a send hit a full buffer.
	Rejected(priority bool)
	// Depth reports the buffer depth after a mutation.
	Depth(priority bool, depth int)
	// Matched is called when a receive consumed a message; skipped is the
	// number of pending messages scanned over before the match.
	Matched(skipped int)
	// TimedOut is called when a ReceiveTimeout expired without a match.
	TimedOut()
	// Cleared is called by Clear.
	Cleared()
}

type nopMailboxMetrics struct{}

func (nopMailboxMetrics) Sent(bool)       {}
func (nopMailboxMetrics) Rejected(bool)   {}
func (nopMailboxMetrics) Depth(bool, int) {}
func (nopMailboxMetrics) Matched(int)     {}
func (nopMailboxMetrics) TimedOut()       {}
func (nopMailboxMetrics) Cleared()        {}

// NopMetrics returns a no-op MailboxMetrics implementation.
func NopMetrics() MailboxMetrics { return nopMailboxMetrics{} }
