// Package binder decodes HTTP request bodies into typed request structs.
//
// JSON returns a binder for application/json bodies that can be plugged into
// handler.Wrap:
//
//	r.Post("/api/qr", handler.Wrap(generate,
//		handler.WithBinders[handler.Context, generator.Request](binder.JSON()),
//	))
//
// Decoding is strict: unknown fields and trailing data are rejected, bodies
// are capped at DefaultMaxJSONSize (see JSONWithLimit) and numbers are decoded
// as json.Number when the destination is an interface, so large numeric
// values such as phone numbers keep every digit.
//
// # Errors
//
// All failures wrap one of ErrMissingContentType, ErrUnsupportedMediaType,
// ErrRequestTooLarge or ErrFailedToParseJSON and can be classified with
// errors.Is.
package binder
