package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a server-assigned identifier that may not exist yet.
// The zero value is an absent identifier.
type ID struct {
	value int64
	valid bool
}

func NewID(v int64) ID {
	return ID{value: v, valid: true}
}

func (id ID) Valid() bool {
	return id.valid
}

// Int64 returns the identifier and whether it is present.
func (id ID) Int64() (int64, bool) {
	return id.value, id.valid
}

// Ptr returns nil for an absent identifier.
func (id ID) Ptr() *int64 {
	if !id.valid {
		return nil
	}
	v := id.value
	return &v
}

// Equal reports whether both identifiers are present and hold the same value.
// An absent identifier is never equal to anything, itself included.
func (id ID) Equal(other ID) bool {
	return id.valid && other.valid && id.value == other.value
}

func (id ID) String() string {
	if !id.valid {
		return "null"
	}
	return strconv.FormatInt(id.value, 10)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.value, 10)), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*id = ID{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*id = NewID(v)
	return nil
}
