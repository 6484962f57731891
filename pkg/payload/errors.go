package payload

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned for a content type outside the supported set.
	ErrUnknownKind = errors.New("unknown payload kind")
	// ErrMissingField is wrapped by FieldError when a required field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is wrapped by FieldError when a field has an unusable value.
	ErrInvalidField = errors.New("invalid field value")
)

// FieldError describes a problem with one field of the payload data.
type FieldError struct {
	Kind   Kind
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %q: %s", e.Kind, e.Err, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %q", e.Kind, e.Err, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(kind Kind, field string) error {
	return &FieldError{Kind: kind, Field: field, Err: ErrMissingField}
}

func invalid(kind Kind, field, reason string) error {
	return &FieldError{Kind: kind, Field: field, Reason: reason, Err: ErrInvalidField}
}
