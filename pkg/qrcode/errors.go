package qrcode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")

	ErrInvalidLevel      = errors.New("invalid error correction level")
	ErrInvalidScale      = errors.New("invalid scale")
	ErrInvalidBorder     = errors.New("invalid border")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrInvalidColor      = errors.New("invalid color")
	ErrImageTooLarge     = errors.New("image too large")
)

// OptionError reports an unusable rendering option.
// Option holds the option name as it appears in requests ("scale", "dark", ...).
type OptionError struct {
	Option string
	Value  string
	Reason string
	Err    error
}

func (e *OptionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v %q", e.Err, e.Value)
	}
	return fmt.Sprintf("%v %q: %s", e.Err, e.Value, e.Reason)
}

func (e *OptionError) Unwrap() error { return e.Err }
