package mailbox

import "github.com/codewandler/fibr-go/core/reflector"

// Handler declares one message shape a receive call accepts and the
// action to run when a pending message matches it. Build handlers with
// [On], [OnMatch] or [On2].
type Handler struct {
	name string
	// try reports (matched, consumed). A matched-but-not-consumed result
	// comes from an OnMatch handler that vetoed the message.
	try func(msg any) (bool, bool)
}

// Name returns the declared message shape, for diagnostics.
func (h Handler) Name() string { return h.name }

// On matches messages whose dynamic type is assignable to T (exact type,
// or any type implementing T when T is an interface) and consumes them
// unconditionally.
func On[T any](fn func(T)) Handler {
	return Handler{
		name: reflector.NameFor[T](),
		try: func(msg any) (bool, bool) {
			v, ok := msg.(T)
			if !ok {
				return false, false
			}
			fn(v)
			return true, true
		},
	}
}

// OnMatch is [On] with a veto: the handler inspects the message and
// returns whether it actually consumed it. A false return leaves the
// message buffered and the scan moves on.
func OnMatch[T any](fn func(T) bool) Handler {
	return Handler{
		name: reflector.NameFor[T](),
		try: func(msg any) (bool, bool) {
			v, ok := msg.(T)
			if !ok {
				return false, false
			}
			return true, fn(v)
		},
	}
}

// On2 matches two-value tuple messages enqueued by Send(a, b) where the
// elements are assignable to A and B respectively.
func On2[A, B any](fn func(A, B)) Handler {
	return Handler{
		name: "(" + reflector.NameFor[A]() + ", " + reflector.NameFor[B]() + ")",
		try: func(msg any) (bool, bool) {
			tup, ok := msg.(tuple)
			if !ok || len(tup) != 2 {
				return false, false
			}
			a, ok := tup[0].(A)
			if !ok {
				return false, false
			}
			b, ok := tup[1].(B)
			if !ok {
				return false, false
			}
			fn(a, b)
			return true, true
		},
	}
}
