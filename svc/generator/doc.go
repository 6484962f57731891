// Package generator turns QR requests into images.
//
// Service.Generate validates the kind, formats the payload with pkg/payload,
// resolves rendering options with their defaults and renders the image with
// pkg/qrcode. Rendering is deterministic, so finished images can be kept in
// an optional Cache (MemoryCache or RedisCache) keyed by a digest of the
// payload and options.
//
// Errors carry one of ErrInvalidKind, ErrMissingField, ErrInvalidOption or
// ErrEncodingFailure for errors.Is, while the underlying *payload.FieldError
// or *qrcode.OptionError stays reachable through errors.As.
package generator
