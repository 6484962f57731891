package qr

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/qrgen/handler"
	"github.com/dmitrymomot/qrgen/pkg/payload"
	"github.com/dmitrymomot/qrgen/pkg/qrcode"
	"github.com/dmitrymomot/qrgen/svc/generator"
)

var (
	ErrInvalidKind    = handler.NewHTTPError(http.StatusBadRequest, "invalid_kind")
	ErrEncodingFailed = handler.HTTPError{
		Code:    http.StatusUnprocessableEntity,
		Key:     "encoding_failed",
		Message: "content could not be encoded as a QR code, shorten it or lower the error correction level",
	}
)

// httpError maps generator failures onto client facing errors.
func httpError(err error) error {
	var (
		fieldErr *payload.FieldError
		optErr   *qrcode.OptionError
	)
	switch {
	case errors.Is(err, generator.ErrInvalidKind):
		return ErrInvalidKind.WithMessage(err.Error())
	case errors.Is(err, generator.ErrMissingField) && errors.As(err, &fieldErr):
		verr := handler.NewValidationError()
		verr.Add(fieldErr.Field, "is required")
		return verr
	case errors.Is(err, generator.ErrInvalidField) && errors.As(err, &fieldErr):
		verr := handler.NewValidationError()
		verr.Add(fieldErr.Field, reason(fieldErr.Reason))
		return verr
	case errors.Is(err, generator.ErrInvalidOption) && errors.As(err, &optErr):
		verr := handler.NewValidationError()
		option := optErr.Option
		if option == "" {
			option = "options"
		}
		verr.Add(option, reason(optErr.Reason))
		return verr
	case errors.Is(err, generator.ErrEncodingFailure):
		return ErrEncodingFailed
	default:
		return handler.ErrInternalServerError.WithMessage("An error occurred processing your request")
	}
}

func reason(r string) string {
	if r == "" {
		return "is invalid"
	}
	return r
}
