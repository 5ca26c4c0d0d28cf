package csp

import "github.com/codewandler/csp-go/core/reflector"

type (
	// Message is a unit of communication between processes. Concrete kinds
	// are distinguished by their Go type; receivers dispatch with a type
	// switch and must either handle or Reject every message they receive.
	//
	// A message is owned by whoever currently holds it. Once sent it must
	// not be mutated.
	Message interface {
		// Sender returns the process that sent the message, or nil when it
		// was sent from outside any process.
		Sender() *Process
	}

	// Base is embedded by concrete message types to carry the sender.
	Base struct {
		From *Process
	}

	// ValueMessage wraps a single value, typically a reply to a request.
	ValueMessage[T any] struct {
		Base
		Value T
	}
)

func (b Base) Sender() *Process { return b.From }

// NewValue creates a ValueMessage sent by from.
func NewValue[T any](from *Process, v T) *ValueMessage[T] {
	return &ValueMessage[T]{Base: Base{From: from}, Value: v}
}

// Get returns the wrapped value.
func (m *ValueMessage[T]) Get() T { return m.Value }

type msgKinder interface{ MsgKind() string }

// KindOf returns the kind name of m used in logs and metric labels: the
// fully qualified Go type name, unless the message chooses its own name
// by implementing MsgKind() string.
func KindOf(m Message) string {
	if m == nil {
		return "<nil>"
	}
	if k, ok := m.(msgKinder); ok {
		return k.MsgKind()
	}
	return reflector.TypeInfoOf(m).Name
}

// Is reports whether m has dynamic type T.
func Is[T Message](m Message) bool {
	_, ok := m.(T)
	return ok
}

// As returns m as T if its dynamic type is T.
func As[T Message](m Message) (T, bool) {
	t, ok := m.(T)
	return t, ok
}
