// Package prometheus provides Prometheus implementations of the metrics
// interfaces of the task and mailbox layers.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/fibr-go/core/metrics"
)

// timer wraps a Prometheus observer to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

// AllMetrics holds Prometheus implementations for both layers.
type AllMetrics struct {
	Task    *taskMetrics
	Mailbox *mailboxMetrics
}

// NewAllMetrics creates Prometheus metrics for both layers at once.
func NewAllMetrics(reg prometheus.Registerer) *AllMetrics {
	return &AllMetrics{
		Task:    NewTaskMetrics(reg).(*taskMetrics),
		Mailbox: NewMailboxMetrics(reg).(*mailboxMetrics),
	}
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func bufLabel(priority bool) string {
	if priority {
		return "priority"
	}
	return "normal"
}
