package data

import "fmt"

// Value is an immutable key/value pair. The key identifies the property or
// slot the value targets on its holder; the payload is opaque to this
// package. A Value never changes after construction, so it is safe to share
// across goroutines and to retain inside a Result.
type Value struct {
	key   string
	value any
}

// NewValue constructs a Value for the given key and payload.
func NewValue(key string, value any) Value {
	return Value{key: key, value: value}
}

// Key returns the identity of the slot this value targets.
func (v Value) Key() string {
	return v.key
}

// Get returns the held payload.
func (v Value) Get() any {
	return v.value
}

// IsZero reports whether the value is the zero Value. Zero Values are not
// accepted by the Builder accumulation methods.
func (v Value) IsZero() bool {
	return v.key == "" && v.value == nil
}

// String renders the value for diagnostics and CLI output.
func (v Value) String() string {
	return fmt.Sprintf("%s=%v", v.key, v.value)
}
