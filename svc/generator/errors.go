package generator

import "errors"

var (
	ErrInvalidKind     = errors.New("invalid kind")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidOption   = errors.New("invalid option")
	ErrEncodingFailure = errors.New("encoding failure")
)

// classified tags a cause with one of the package sentinels. The message is
// the cause's, so clients see the specific problem.
type classified struct {
	class error
	cause error
}

func classify(class, cause error) error {
	return &classified{class: class, cause: cause}
}

func (e *classified) Error() string { return e.cause.Error() }

func (e *classified) Unwrap() []error { return []error{e.class, e.cause} }
