// Package qrcode renders QR code symbols as PNG or SVG images.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode. The
// upstream library is used to build the symbol matrix; this package then
// draws the matrix itself so that callers control module size (scale),
// quiet zone width (border), error correction level and colours, and can
// choose between raster and vector output.
//
// # Architecture
//
// Render is the single entry point and dispatches on Options.Format:
//
//   - PNG draws a two-colour paletted image of
//     (modules + 2*border) * scale pixels per side.
//   - SVG writes an <svg> document whose viewBox is measured in modules and
//     whose dark modules form a single <path>.
//
// DataURI wraps Render and returns a data: URI that can be used directly in
// an <img> tag.
//
// Output is deterministic: the same content and Options always produce the
// same bytes.
//
// # Usage
//
//	import "github.com/dmitrymomot/qrgen/pkg/qrcode"
//
//	opts := qrcode.DefaultOptions()
//	opts.Format = qrcode.FormatSVG
//	opts.Dark, _ = qrcode.ParseColor("navy")
//
//	img, err := qrcode.Render("https://example.com", opts)
//	if err != nil {
//		// handle error
//	}
//
// # Error Handling
//
// Invalid options are reported as *OptionError values wrapping one of
// ErrInvalidLevel, ErrInvalidScale, ErrInvalidBorder, ErrUnsupportedFormat or
// ErrInvalidColor. ErrEmptyContent is returned for blank content and
// ErrFailedToGenerateQRCode, joined with the upstream error, when the content
// cannot be encoded (for example when it is too long for the chosen level).
package qrcode
