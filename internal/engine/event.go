package engine

import (
	"fmt"
	"image/color"

	"github.com/tartampluch/go-calendar/internal/config"
)

// Color is a 32-bit ARGB value (0xAARRGGBB).
type Color uint32

// ColorOf converts any color.Color to ARGB.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B))
}

// NRGBA returns c as a non-premultiplied color usable by the toolkit.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		A: uint8(c >> 24),
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

// Hex returns "#AARRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf(config.FormatColor, uint32(c))
}

// Event is a titled, colored marker attached to a single date.
// Events are owned by a Store and never modified after creation.
type Event struct {
	ID    int64
	Date  Date
	Title string
	Color Color
}
