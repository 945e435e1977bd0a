// Package ds provides generic data structures used by the runtime core.
package ds

import "fmt"

// Ring is a bounded FIFO buffer with positional access and mid-queue
// removal. It backs the mailbox buffers, where selective receive must
// inspect pending entries in arrival order and remove a matched entry
// that is not necessarily the oldest one.
//
// # Mutation Semantics
//
// The following methods mutate the receiver:
//   - Push, RemoveAt, Clear
//
// At and Len never modify the buffer. Ring is not safe for concurrent
// use; callers hold their own lock.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing creates an empty ring with the given fixed capacity.
// Panics if capacity is not positive.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("ds: invalid ring capacity %d", capacity))
	}
	return &Ring[T]{items: make([]T, capacity)}
}

func (r *Ring[T]) String() string {
	out := make([]T, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.at(i))
	}
	return fmt.Sprintf("%v", out)
}

// Len returns the number of buffered entries.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.items) }

// Full reports whether the ring is at capacity.
func (r *Ring[T]) Full() bool { return r.size == len(r.items) }

// Push appends v at the tail. Returns false when the ring is full. (mutates)
func (r *Ring[T]) Push(v T) bool {
	if r.Full() {
		return false
	}
	r.items[(r.head+r.size)%len(r.items)] = v
	r.size++
	return true
}

// At returns the entry at position i, where 0 is the oldest entry.
// Panics if i is out of range.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic(fmt.Sprintf("ds: ring index %d out of range [0,%d)", i, r.size))
	}
	return r.at(i)
}

func (r *Ring[T]) at(i int) T {
	return r.items[(r.head+i)%len(r.items)]
}

// RemoveAt removes the entry at position i, preserving the order of the
// remaining entries. O(n) in the distance from i to the nearest end. (mutates)
func (r *Ring[T]) RemoveAt(i int) {
	if i < 0 || i >= r.size {
		panic(fmt.Sprintf("ds: ring index %d out of range [0,%d)", i, r.size))
	}

	var zero T
	if i < r.size/2 {
		// Shift the older half forward.
		for j := i; j > 0; j-- {
			r.items[(r.head+j)%len(r.items)] = r.items[(r.head+j-1)%len(r.items)]
		}
		r.items[r.head] = zero
		r.head = (r.head + 1) % len(r.items)
	} else {
		// Shift the newer half back.
		for j := i; j < r.size-1; j++ {
			r.items[(r.head+j)%len(r.items)] = r.items[(r.head+j+1)%len(r.items)]
		}
		r.items[(r.head+r.size-1)%len(r.items)] = zero
	}
	r.size--
}

// Clear removes all entries. (mutates)
func (r *Ring[T]) Clear() {
	var zero T
	for i := 0; i < r.size; i++ {
		r.items[(r.head+i)%len(r.items)] = zero
	}
	r.head = 0
	r.size = 0
}
