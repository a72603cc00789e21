package slideview

import (
	"fmt"
	"image/color"
	"strings"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g. "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
	ColorGray  = Color{ARGB: "FFC8C8C8"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return Color{ARGB: "FF000000"} // fallback to black
	}
	return Color{ARGB: argb}
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// Red returns the red component (0-255).
func (c Color) Red() uint8 { return parseHexByte(c.ARGB, 2) }

// Green returns the green component (0-255).
func (c Color) Green() uint8 { return parseHexByte(c.ARGB, 4) }

// Blue returns the blue component (0-255).
func (c Color) Blue() uint8 { return parseHexByte(c.ARGB, 6) }

// Alpha returns the alpha component (0-255).
func (c Color) Alpha() uint8 { return parseHexByte(c.ARGB, 0) }

// RGBA converts the color to the standard library representation.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

// Tint blends the color toward white: channel' = channel + (1-channel)*ratio.
// Operates in normalized channel space and preserves alpha. The ratio is
// clamped to [0, 1].
func (c Color) Tint(ratio float64) Color {
	ratio = clamp01(ratio)
	return c.mapChannels(func(ch float64) float64 {
		return ch + (1-ch)*ratio
	})
}

// Shade scales the color toward black: channel' = channel * ratio.
// Operates in normalized channel space and preserves alpha. The ratio is
// clamped to [0, 1].
func (c Color) Shade(ratio float64) Color {
	ratio = clamp01(ratio)
	return c.mapChannels(func(ch float64) float64 {
		return ch * ratio
	})
}

// WithAlpha returns the color with the alpha byte replaced.
// ratio is opacity in [0, 1].
func (c Color) WithAlpha(ratio float64) Color {
	a := uint8(clamp01(ratio)*255 + 0.5)
	return Color{ARGB: fmt.Sprintf("%02X", a) + c.ARGB[2:]}
}

func (c Color) mapChannels(f func(float64) float64) Color {
	r := uint8(clamp01(f(float64(c.Red())/255))*255 + 0.5)
	g := uint8(clamp01(f(float64(c.Green())/255))*255 + 0.5)
	b := uint8(clamp01(f(float64(c.Blue())/255))*255 + 0.5)
	return Color{ARGB: fmt.Sprintf("%02X%02X%02X%02X", c.Alpha(), r, g, b)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}
