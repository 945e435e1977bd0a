package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/fibr-go/core/metrics"
	"github.com/codewandler/fibr-go/core/task"
)

// taskMetrics implements task.TaskMetrics using Prometheus.
type taskMetrics struct {
	started     *prometheus.CounterVec
	completed   *prometheus.CounterVec
	panics      prometheus.Counter
	duration    prometheus.Histogram
	interrupted prometheus.Counter
	terminated  prometheus.Counter
	activeTasks prometheus.Gauge
	idleSlots   prometheus.Gauge
}

// NewTaskMetrics creates a new Prometheus implementation of TaskMetrics.
func NewTaskMetrics(reg prometheus.Registerer) task.TaskMetrics {
	m := &taskMetrics{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibr_task_started_total",
			Help: "Total number of tasks started",
		}, []string{"reused"}),

		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibr_task_completed_total",
			Help: "Total number of tasks completed",
		}, []string{"success"}),

		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_task_panics_total",
			Help: "Total number of task panics",
		}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fibr_task_duration_seconds",
			Help:    "Task run time in seconds",
			Buckets: defaultBuckets,
		}),

		interrupted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_task_interrupts_total",
			Help: "Total number of interrupt signals delivered",
		}),

		terminated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibr_task_terminates_total",
			Help: "Total number of terminate signals delivered",
		}),

		activeTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fibr_task_active",
			Help: "Number of tasks currently running",
		}),

		idleSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fibr_task_idle_slots",
			Help: "Number of parked execution slots",
		}),
	}

	reg.MustRegister(
		m.started,
		m.completed,
		m.panics,
		m.duration,
		m.interrupted,
		m.terminated,
		m.activeTasks,
		m.idleSlots,
	)

	return m
}

func (m *taskMetrics) TaskStarted(reused bool) {
	m.started.WithLabelValues(boolToStr(reused)).Inc()
}

func (m *taskMetrics) TaskCompleted(success bool) {
	m.completed.WithLabelValues(boolToStr(success)).Inc()
}

func (m *taskMetrics) TaskPanicked() {
	m.panics.Inc()
}

func (m *taskMetrics) TaskDuration() metrics.Timer {
	return newTimer(m.duration)
}

func (m *taskMetrics) TaskInterrupted() {
	m.interrupted.Inc()
}

func (m *taskMetrics) TaskTerminated() {
	m.terminated.Inc()
}

func (m *taskMetrics) ActiveTasks(n int) {
	m.activeTasks.Set(float64(n))
}

func (m *taskMetrics) IdleSlots(n int) {
	m.idleSlots.Set(float64(n))
}

var _ task.TaskMetrics = (*taskMetrics)(nil)
