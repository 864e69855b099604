package types

import (
	"bytes"
	"encoding/json"
)

// Nullable tracks whether a JSON field was present, and if so whether it
// carried null. PATCH payloads use it to tell "leave as is" from "clear".
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Set = true
		n.Value = nil
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Set = true
	n.Value = &parsed
	return nil
}

// Some returns a Nullable that is set to value.
func Some[T any](value T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &value}
}

// Null returns a Nullable that is set to null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}
