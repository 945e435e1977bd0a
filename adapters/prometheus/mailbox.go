package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/fibr-go/core/mailbox"
)

// mailboxMetrics implements mailbox.MailboxMetrics using Prometheus.
// Depth is reported as the maximum across mailboxes per buffer class;
// per-mailbox gauges would need an unbounded label set.
type mailboxMetrics struct {
	sent     *prometheus.CounterVec
	rejected *prometheus.CounterVec
	depth    *prometheus.GaugeVec
	matched  prometheus.Counter
	skipped  prometheus.Counter
	timeouts prometheus.Counter
	clears   prometheus.Counter
}

// NewMailboxMetrics creates a new Prometheus implementation of MailboxMetrics.
func NewMailboxMetrics(reg prometheus.Registerer) mailbox.MailboxMetrics {
	m := &mailboxMetrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibr_mailbox_sent_total",
			Help: "Total number of messages buffered",
		}, []string{"buffer"}),

		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibr_mailbox_rejected_total",
			Help: "Total number of sends rejected by a full buffer",
		}, []string{"buffer"}),

		depth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fibr_mailbox_depth",
			Help: "Buffer depth after the most recent mutation",
		}, []string{"buffer"}),

		matched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_mailbox_matched_total",
			Help: "Total number of messages consumed by selective receive",
		}),

		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_mailbox_skipped_total",
			Help: "Total number of pending messages scanned over before a match",
		}),

		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_mailbox_timeouts_total",
			Help: "Total number of receive timeouts",
		}),

		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_mailbox_clears_total",
			Help: "Total number of mailbox clears",
		}),
	}

	reg.MustRegister(
		m.sent,
		m.rejected,
		m.depth,
		m.matched,
		m.skipped,
		m.timeouts,
		m.clears,
	)

	return m
}

func (m *mailboxMetrics) Sent(priority bool) {
	m.sent.WithLabelValues(bufLabel(priority)).Inc()
}

func (m *mailboxMetrics) Rejected(priority bool) {
	m.rejected.WithLabelValues(bufLabel(priority)).Inc()
}

func (m *mailboxMetrics) Depth(priority bool, depth int) {
	m.depth.WithLabelValues(bufLabel(priority)).Set(float64(depth))
}

func (m *mailboxMetrics) Matched(skipped int) {
	m.matched.Inc()
	m.skipped.Add(float64(skipped))
}

func (m *mailboxMetrics) TimedOut() {
	m.timeouts.Inc()
}

func (m *mailboxMetrics) Cleared() {
	m.clears.Inc()
}

var _ mailbox.MailboxMetrics = (*mailboxMetrics)(nil)
