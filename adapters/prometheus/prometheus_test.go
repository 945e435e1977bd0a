package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTaskMetrics(reg)

	require.NotNil(t, m)

	m.TaskStarted(false)
	m.TaskStarted(true)
	m.TaskCompleted(true)
	m.TaskCompleted(false)
	m.TaskPanicked()

	timer := m.TaskDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.TaskInterrupted()
	m.TaskTerminated()
	m.ActiveTasks(3)
	m.IdleSlots(2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	assert.True(t, names["fibr_task_started_total"])
	assert.True(t, names["fibr_task_completed_total"])
	assert.True(t, names["fibr_task_duration_seconds"])
	assert.True(t, names["fibr_task_active"])
}

func TestNewMailboxMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMailboxMetrics(reg)

	require.NotNil(t, m)

	m.Sent(true)
	m.Sent(false)
	m.Rejected(false)
	m.Depth(true, 1)
	m.Depth(false, 4)
	m.Matched(2)
	m.TimedOut()
	m.Cleared()

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	assert.True(t, names["fibr_mailbox_sent_total"])
	assert.True(t, names["fibr_mailbox_depth"])
	assert.True(t, names["fibr_mailbox_matched_total"])
	assert.True(t, names["fibr_mailbox_timeouts_total"])
}

func TestNewAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	all := NewAllMetrics(reg)

	require.NotNil(t, all.Task)
	require.NotNil(t, all.Mailbox)

	// Both sets register on the same registry without collisions.
	all.Task.TaskStarted(false)
	all.Mailbox.Sent(false)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}
