package task

import "github.com/codewandler/fibr-go/core/metrics"

// TaskMetrics defines the metrics interface for the task layer.
// All methods are thread-safe.
type TaskMetrics interface {
	// Lifecycle
	TaskStarted(reused bool)
	TaskCompleted(success bool)
	TaskPanicked()
	TaskDuration() metrics.Timer

	// Signals
	TaskInterrupted()
	TaskTerminated()

	// Pool occupancy
	ActiveTasks(n int)
	IdleSlots(n int)
}

// nopTaskMetrics is a no-op implementation of TaskMetrics.
type nopTaskMetrics struct{}

func (nopTaskMetrics) TaskStarted(bool)            {}
func (nopTaskMetrics) TaskCompleted(bool)          {}
func (nopTaskMetrics) TaskPanicked()               {}
func (nopTaskMetrics) TaskDuration() metrics.Timer { return metrics.NopTimer() }

func (nopTaskMetrics) TaskInterrupted() {}
func (nopTaskMetrics) TaskTerminated()  {}

func (nopTaskMetrics) ActiveTasks(int) {}
func (nopTaskMetrics) IdleSlots(int)   {}

// NopTaskMetrics returns a no-op TaskMetrics implementation.
func NopTaskMetrics() TaskMetrics { return nopTaskMetrics{} }
