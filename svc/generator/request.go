package generator

import (
	"errors"
	"image/color"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

// Request is the body of a QR generation call. Empty strings and nil
// pointers fall back to the defaults of qrcode.DefaultOptions.
type Request struct {
	Type   string         `json:"type"`
	Data   map[string]any `json:"data"`
	Error  string         `json:"error,omitempty"`
	Scale  *int           `json:"scale,omitempty"`
	Border *int           `json:"border,omitempty"`
	Format string         `json:"format,omitempty"`
	Dark   string         `json:"dark,omitempty"`
	Light  string         `json:"light,omitempty"`
}

// Options resolves the rendering options. Problems are reported as
// *qrcode.OptionError naming the offending request field.
func (r Request) Options() (qrcode.Options, error) {
	opts := qrcode.DefaultOptions()
	var err error

	if r.Error != "" {
		if opts.Level, err = qrcode.ParseLevel(r.Error); err != nil {
			return opts, err
		}
	}
	if r.Scale != nil {
		opts.Scale = *r.Scale
	}
	if r.Border != nil {
		opts.Border = *r.Border
	}
	if r.Format != "" {
		if opts.Format, err = qrcode.ParseFormat(r.Format); err != nil {
			return opts, err
		}
	}
	if r.Dark != "" {
		if opts.Dark, err = parseColor("dark", r.Dark); err != nil {
			return opts, err
		}
	}
	if r.Light != "" {
		if opts.Light, err = parseColor("light", r.Light); err != nil {
			return opts, err
		}
	}

	return opts, opts.Validate()
}

func parseColor(option, value string) (color.NRGBA, error) {
	c, err := qrcode.ParseColor(value)
	if optErr := (*qrcode.OptionError)(nil); errors.As(err, &optErr) {
		optErr.Option = option
	}
	return c, err
}
