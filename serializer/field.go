package serializer

import (
	"bytes"
	"encoding/json"

	"octofit-backend/errs"
)

// Field is an optional input value. It keeps an absent field, an explicit null
// and a value of the wrong JSON type apart.
type Field[T any] struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   T
}

// Some returns a Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}

	if err := json.Unmarshal(data, &f.Value); err != nil {
		f.Invalid = true
	}

	return nil
}

// ok reports whether f holds a value to apply. Missing (when not partial),
// null and mistyped values are recorded in fe under field.
func (f Field[T]) ok(fe errs.FieldErrors, field string, partial bool) bool {
	switch {
	case !f.Set:
		if !partial {
			fe.Add(field, msgRequired)
		}
		return false
	case f.Null:
		fe.Add(field, msgNull)
		return false
	case f.Invalid:
		fe.Add(field, msgIncorrectType)
		return false
	}

	return true
}
