package task

import (
	"fmt"

	"github.com/codewandler/fibr-go/core/reflector"
)

// Set stores a task-local value under key, overwriting silently. Only
// code running inside this context may touch its local storage.
func (c *Context) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locals[key] = v
}

// Get returns the task-local value stored under key. A key never set on
// the current task generation fails with ErrUnsetLocal; check IsSet
// first or handle the error.
func (c *Context) Get(key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.locals[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsetLocal, key)
	}
	return v, nil
}

// IsSet reports whether key holds a value for the current task.
func (c *Context) IsSet(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.locals[key]
	return ok
}

// ResetLocalStorage drops all task-local values. The pool calls this
// when recycling the slot; tasks may also call it on themselves.
func (c *Context) ResetLocalStorage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locals = make(map[string]any)
}

// Local retrieves the value under key with its exact stored type. The
// value type is erased on Set and must round-trip faithfully: a stored
// int is not a retrievable int64.
func Local[T any](c *Context, key string) (T, error) {
	var zero T
	v, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %s, want %s",
			ErrLocalType, key, reflector.NameOf(v), reflector.NameFor[T]())
	}
	return t, nil
}
