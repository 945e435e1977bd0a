package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/fibr-go/core/mailbox"
)

func newTestPool(t *testing.T) *Pool {
	t.Helper()
	p := NewPool(PoolOptions{Context: t.Context()})
	t.Cleanup(p.Close)
	return p
}

// runTask runs fn on the pool and waits for it to finish.
func runTask(t *testing.T, p *Pool, fn Func) Handle {
	t.Helper()
	h, err := p.Go(fn)
	require.NoError(t, err)
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}
	return h
}

// waitIdle blocks until the pool has parked n slots.
func waitIdle(t *testing.T, p *Pool, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.idle) >= n
	}, time.Second, time.Millisecond)
}

func TestHandle_zeroValue(t *testing.T) {
	var h Handle
	require.False(t, h.Running())
	require.ErrorIs(t, h.Send(1), ErrNoTask)
	require.ErrorIs(t, h.PrioritySend(1), ErrNoTask)
	require.ErrorIs(t, h.Interrupt(), ErrNoTask)
	require.ErrorIs(t, h.Terminate(), ErrNoTask)
	require.Equal(t, "task:none", h.String())

	select {
	case <-h.Done():
	default:
		t.Fatal("zero handle Done must be closed")
	}
}

func TestHandle_equalityUnderReuse(t *testing.T) {
	p := newTestPool(t)

	first := runTask(t, p, func(tc *Context) error { return nil })
	waitIdle(t, p, 1)
	second := runTask(t, p, func(tc *Context) error { return nil })

	// Same slot, different logical task.
	require.Same(t, first.ctx, second.ctx)
	require.NotEqual(t, first, second)
	require.False(t, first.Equal(second))
	require.Equal(t, first.gen+1, second.gen)
}

func TestHandle_runningAfterCompletion(t *testing.T) {
	p := newTestPool(t)

	started := make(chan Handle, 1)
	release := make(chan struct{})
	h, err := p.Go(func(tc *Context) error {
		started <- tc.Handle()
		<-release
		return nil
	})
	require.NoError(t, err)

	self := <-started
	require.True(t, self.Running())
	require.Equal(t, h, self)

	close(release)
	<-h.Done()
	require.False(t, h.Running())
	require.False(t, self.Running())
}

func TestHandle_staleAfterReuse(t *testing.T) {
	p := newTestPool(t)

	stale := runTask(t, p, func(tc *Context) error { return nil })
	waitIdle(t, p, 1)

	release := make(chan struct{})
	fresh, err := p.Go(func(tc *Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)
	defer close(release)

	require.True(t, fresh.Running())
	require.False(t, stale.Running())
	require.ErrorIs(t, stale.Send(1), ErrNotRunning)
	require.ErrorIs(t, stale.Interrupt(), ErrNotRunning)
	require.ErrorIs(t, stale.Terminate(), ErrNotRunning)
}

func TestContext_localStorage(t *testing.T) {
	p := newTestPool(t)

	runTask(t, p, func(tc *Context) error {
		require.False(t, tc.IsSet("k"))
		_, err := tc.Get("k")
		require.ErrorIs(t, err, ErrUnsetLocal)

		tc.Set("k", 41)
		tc.Set("k", 42) // silent overwrite
		require.True(t, tc.IsSet("k"))

		v, err := tc.Get("k")
		require.NoError(t, err)
		require.Equal(t, 42, v)

		n, err := Local[int](tc, "k")
		require.NoError(t, err)
		require.Equal(t, 42, n)

		// Exact type only: the stored int is not an int64.
		_, err = Local[int64](tc, "k")
		require.ErrorIs(t, err, ErrLocalType)

		tc.ResetLocalStorage()
		require.False(t, tc.IsSet("k"))
		return nil
	})
}

func TestContext_localStorageClearedOnReuse(t *testing.T) {
	p := newTestPool(t)

	runTask(t, p, func(tc *Context) error {
		tc.Set("k", "v")
		return nil
	})
	waitIdle(t, p, 1)

	runTask(t, p, func(tc *Context) error {
		require.False(t, tc.IsSet("k"))
		_, err := tc.Get("k")
		require.ErrorIs(t, err, ErrUnsetLocal)
		return nil
	})
}

func TestContext_mailboxPersistsAcrossReuse(t *testing.T) {
	p := newTestPool(t)

	first := runTask(t, p, func(tc *Context) error { return nil })
	waitIdle(t, p, 1)

	// The old generation is gone, but its mailbox (and anything still
	// buffered in it) carries over to the next occupant.
	require.NoError(t, first.ctx.Mailbox().Send("leftover"))

	runTask(t, p, func(tc *Context) error {
		var got string
		require.NoError(t, tc.Receive(mailbox.On(func(s string) { got = s })))
		require.Equal(t, "leftover", got)
		return nil
	})
}

func TestContext_receiveRoundTrip(t *testing.T) {
	p := newTestPool(t)

	type request struct{ N int }

	got := make(chan int, 1)
	release := make(chan struct{})
	h, err := p.Go(func(tc *Context) error {
		defer close(release)
		return tc.Receive(mailbox.On(func(r request) { got <- r.N }))
	})
	require.NoError(t, err)

	require.NoError(t, h.Send(request{N: 7}))
	select {
	case n := <-got:
		require.Equal(t, 7, n)
	case <-time.After(time.Second):
		t.Fatal("task never received")
	}
	<-release
}

func TestContext_receiveTimeout(t *testing.T) {
	p := newTestPool(t)

	runTask(t, p, func(tc *Context) error {
		start := time.Now()
		ok, err := tc.ReceiveTimeout(100*time.Millisecond, mailbox.On(func(n int) {}))
		require.NoError(t, err)
		require.False(t, ok)
		require.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)

		prio, norm := tc.Mailbox().Len()
		require.Zero(t, prio)
		require.Zero(t, norm)
		return nil
	})
}
