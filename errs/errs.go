package errs

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrDatabase      = errors.New("E0001: database error")
	ErrNotFound      = errors.New("E0002: not found")
	ErrInvalidID     = errors.New("E0003: invalid ID")
	ErrInvalidBody   = errors.New("E0004: malformed request body")
	ErrCryptographic = errors.New("E0005: cryptographic failure")
	ErrQueue         = errors.New("E0006: queue error")
	ErrValidation    = errors.New("E0007: validation failed")
	ErrInternal      = errors.New("E0008: internal error")
)

// FieldErrors collects validation messages keyed by field name.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, k := range fields {
		parts = append(parts, k+": "+strings.Join(f[k], " "))
	}

	return ErrValidation.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// OrNil returns nil when no field failed.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}

	return f
}
