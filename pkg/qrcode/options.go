package qrcode

import (
	"image/color"
	"strconv"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Limits for the size related options. MaxImageSide bounds the pixel side of
// raster output, whatever the symbol version.
const (
	MaxScale     = 50
	MaxBorder    = 20
	MaxImageSide = 4096
)

// Level is the QR error correction level.
type Level string

const (
	LevelL Level = "L" // ~7% recovery
	LevelM Level = "M" // ~15% recovery
	LevelQ Level = "Q" // ~25% recovery
	LevelH Level = "H" // ~30% recovery
)

// ParseLevel converts "L", "M", "Q" or "H" (any case) into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := l.recovery(); !ok {
		return "", &OptionError{Option: "error", Value: s, Reason: "must be one of L, M, Q, H", Err: ErrInvalidLevel}
	}
	return l, nil
}

func (l Level) recovery() (skipqrcode.RecoveryLevel, bool) {
	switch l {
	case LevelL:
		return skipqrcode.Low, true
	case LevelM:
		return skipqrcode.Medium, true
	case LevelQ:
		return skipqrcode.High, true
	case LevelH:
		return skipqrcode.Highest, true
	default:
		return 0, false
	}
}

// Format is the image serialization.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat converts "png" or "svg" (any case) into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", &OptionError{Option: "format", Value: s, Reason: "must be png or svg", Err: ErrUnsupportedFormat}
	}
}

// ContentType returns the media type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string {
	return string(f)
}

// Options controls how a symbol is rendered.
type Options struct {
	Level  Level
	Scale  int // pixels per module
	Border int // quiet zone width in modules
	Format Format
	Dark   color.NRGBA
	Light  color.NRGBA
}

// DefaultOptions returns medium error correction, scale 10, a four module
// quiet zone and black on white PNG output.
func DefaultOptions() Options {
	return Options{
		Level:  LevelM,
		Scale:  10,
		Border: 4,
		Format: FormatPNG,
		Dark:   color.NRGBA{A: 0xff},
		Light:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Validate checks every option and returns the first problem found.
func (o Options) Validate() error {
	if _, ok := o.Level.recovery(); !ok {
		return &OptionError{Option: "error", Value: string(o.Level), Reason: "must be one of L, M, Q, H", Err: ErrInvalidLevel}
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return &OptionError{Option: "scale", Value: strconv.Itoa(o.Scale), Reason: "must be between 1 and " + strconv.Itoa(MaxScale), Err: ErrInvalidScale}
	}
	if o.Border < 0 || o.Border > MaxBorder {
		return &OptionError{Option: "border", Value: strconv.Itoa(o.Border), Reason: "must be between 0 and " + strconv.Itoa(MaxBorder), Err: ErrInvalidBorder}
	}
	if o.Format != FormatPNG && o.Format != FormatSVG {
		return &OptionError{Option: "format", Value: string(o.Format), Reason: "must be png or svg", Err: ErrUnsupportedFormat}
	}
	return nil
}
