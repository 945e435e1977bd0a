package ds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRing_pushPopOrder(t *testing.T) {
	r := NewRing[int](4)
	require.Equal(t, 0, r.Len())
	require.Equal(t, 4, r.Cap())

	for i := 1; i <= 4; i++ {
		require.True(t, r.Push(i))
	}
	require.True(t, r.Full())
	require.False(t, r.Push(5))

	for i := 0; i < 4; i++ {
		require.Equal(t, i+1, r.At(i))
	}
}

func TestRing_removeAt(t *testing.T) {
	r := NewRing[string](8)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		require.True(t, r.Push(s))
	}

	// Remove from the middle, order of the rest preserved.
	r.RemoveAt(2)
	require.Equal(t, 4, r.Len())
	require.Equal(t, "a", r.At(0))
	require.Equal(t, "b", r.At(1))
	require.Equal(t, "d", r.At(2))
	require.Equal(t, "e", r.At(3))

	// Remove the oldest.
	r.RemoveAt(0)
	require.Equal(t, "b", r.At(0))

	// Remove the newest.
	r.RemoveAt(r.Len() - 1)
	require.Equal(t, 2, r.Len())
	require.Equal(t, "b", r.At(0))
	require.Equal(t, "d", r.At(1))
}

func TestRing_wrapAround(t *testing.T) {
	r := NewRing[int](3)
	require.True(t, r.Push(1))
	require.True(t, r.Push(2))
	r.RemoveAt(0)
	require.True(t, r.Push(3))
	require.True(t, r.Push(4)) // wraps past the backing slice end
	require.True(t, r.Full())

	require.Equal(t, 2, r.At(0))
	require.Equal(t, 3, r.At(1))
	require.Equal(t, 4, r.At(2))

	r.RemoveAt(1)
	require.Equal(t, 2, r.At(0))
	require.Equal(t, 4, r.At(1))
}

func TestRing_clear(t *testing.T) {
	r := NewRing[int](2)
	r.Push(1)
	r.Push(2)
	r.Clear()
	require.Equal(t, 0, r.Len())
	require.True(t, r.Push(7))
	require.Equal(t, 7, r.At(0))
}

func TestRing_panics(t *testing.T) {
	require.Panics(t, func() { NewRing[int](0) })

	r := NewRing[int](2)
	require.Panics(t, func() { r.At(0) })
	require.Panics(t, func() { r.RemoveAt(0) })
}
