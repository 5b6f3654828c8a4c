package core

import (
	"fmt"
	"math"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB is a 24-bit color. The arena background is expressed in RGB so the
// difficulty gradient is independent of the terminal palette.
type RGB struct {
	R, G, B uint8
}

// Lerp interpolates per channel from c toward to by t, clamped to [0, 1].
func (c RGB) Lerp(to RGB, t float64) RGB {
	t = ClampF(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return RGB{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}

// Hex returns the color in #rrggbb form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance returns the perceived brightness in [0, 255].
func (c RGB) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
