package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Render encodes content and serializes it in opts.Format.
func Render(content string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatSVG:
		return SVG(content, opts)
	default:
		return PNG(content, opts)
	}
}

// PNG renders content as a paletted PNG image.
func PNG(content string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bitmap, err := symbol(content, opts.Level)
	if err != nil {
		return nil, err
	}

	side := (len(bitmap) + 2*opts.Border) * opts.Scale
	if side > MaxImageSide {
		return nil, &OptionError{
			Option: "scale",
			Value:  strconv.Itoa(opts.Scale),
			Reason: fmt.Sprintf("image would be %dpx wide, the limit is %dpx, lower scale or border", side, MaxImageSide),
			Err:    ErrImageTooLarge,
		}
	}
	// Index 0 is light so a freshly allocated image is already the background.
	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{opts.Light, opts.Dark})

	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + opts.Border) * opts.Scale
			y0 := (y + opts.Border) * opts.Scale
			for py := y0; py < y0+opts.Scale; py++ {
				for px := x0; px < x0+opts.Scale; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return buf.Bytes(), nil
}

// SVG renders content as an SVG document without an XML declaration.
func SVG(content string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bitmap, err := symbol(content, opts.Level)
	if err != nil {
		return nil, err
	}

	size := len(bitmap) + 2*opts.Border
	px := size * opts.Scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		px, px, size, size)
	if opts.Light.A != 0 {
		fmt.Fprintf(&buf, `<rect width="%d" height="%d"%s/>`, size, size, fillAttrs(opts.Light))
	}
	if d := modulePath(bitmap, opts.Border); d != "" && opts.Dark.A != 0 {
		fmt.Fprintf(&buf, `<path d="%s"%s/>`, d, fillAttrs(opts.Dark))
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// DataURI renders content and returns it as a base64 data URI for <img src>.
func DataURI(content string, opts Options) (string, error) {
	img, err := Render(content, opts)
	if err != nil {
		return "", err
	}
	return "data:" + opts.Format.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(img), nil
}

// symbol returns the module matrix without quiet zone.
func symbol(content string, level Level) ([][]bool, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	recovery, ok := level.recovery()
	if !ok {
		return nil, &OptionError{Option: "error", Value: string(level), Err: ErrInvalidLevel}
	}
	q, err := skipqrcode.New(content, recovery)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// modulePath merges horizontal runs of dark modules into one path.
func modulePath(bitmap [][]bool, border int) string {
	var b strings.Builder
	for y, row := range bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&b, "M%d %dh%dv1h-%dz", start+border, y+border, x-start, x-start)
		}
	}
	return b.String()
}

func fillAttrs(c color.NRGBA) string {
	attrs := ` fill="` + HexColor(c) + `"`
	if c.A != 0xff {
		attrs += ` fill-opacity="` + strconv.FormatFloat(float64(c.A)/0xff, 'f', 3, 64) + `"`
	}
	return attrs
}
