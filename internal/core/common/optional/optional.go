// Package optional distinguishes "field absent" from "field explicitly null"
// in partial-update request bodies.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is set only when its key appears in the decoded JSON object.
// Null reports whether that key carried an explicit null.
type Value[T any] struct {
	Set  bool
	Null bool
	V    T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.V)
}

// Ptr returns nil for an explicit null, otherwise a pointer to the value.
func (o Value[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.V
	return &v
}
