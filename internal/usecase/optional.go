package usecase

import (
	"bytes"
	"encoding/json"
)

// Optional is a presence-aware field of a transfer record. It tells apart a
// key missing from the payload, an explicit null and an actual value.
type Optional[T any] struct {
	value   T
	present bool
	hasVal  bool
}

func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true, hasVal: true}
}

func Null[T any]() Optional[T] {
	return Optional[T]{present: true}
}

// FromPtr maps nil to an explicit null.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Null[T]()
	}
	return Of(*p)
}

// Get returns the value and whether a non-null value was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.hasVal
}

// Present reports whether the key was supplied at all, null included.
func (o Optional[T]) Present() bool {
	return o.present
}

func (o Optional[T]) IsNull() bool {
	return o.present && !o.hasVal
}

// Ptr returns nil unless a value was supplied.
func (o Optional[T]) Ptr() *T {
	if !o.hasVal {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) OrZero() T {
	return o.value
}

func (o Optional[T]) validationValue() any {
	if !o.hasVal {
		return nil
	}
	return o.value
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.hasVal {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Of(v)
	return nil
}
