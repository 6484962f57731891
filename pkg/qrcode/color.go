package qrcode

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts #RGB, #RGBA, #RRGGBB, #RRGGBBAA, SVG/CSS color names
// and the keyword "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))

	if v == "transparent" {
		return color.NRGBA{}, nil
	}
	if hex, ok := strings.CutPrefix(v, "#"); ok {
		if c, ok := parseHex(hex); ok {
			return c, nil
		}
	} else if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	return color.NRGBA{}, &OptionError{
		Value:  s,
		Reason: "expected #RGB, #RRGGBB, #RRGGBBAA or a color name",
		Err:    ErrInvalidColor,
	}
}

func parseHex(h string) (color.NRGBA, bool) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	if len(h) == 6 {
		h += "ff"
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, true
}

// HexColor formats the RGB part of c as #rrggbb.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
