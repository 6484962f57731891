package qrcode_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{A: 0xff}},
		{"#FFFFFF", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}},
		{"#0f08", color.NRGBA{G: 0xff, A: 0x88}},
		{"#12345678", color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}},
		{"Navy", color.NRGBA{B: 0x80, A: 0xff}},
		{" white ", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"transparent", color.NRGBA{}},
	}
	for _, tt := range tests {
		got, err := qrcode.ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#", "#12", "#12345", "#gggggg", "notacolor", "rgb(0,0,0)", "#+12345"} {
		_, err := qrcode.ParseColor(bad)
		assert.ErrorIs(t, err, qrcode.ErrInvalidColor, bad)
	}
}

func TestHexColor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "#0a0b0c", qrcode.HexColor(color.NRGBA{R: 10, G: 11, B: 12, A: 0xff}))
}
