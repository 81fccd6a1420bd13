package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette used by the simulation and renderer
var (
	ColorAsphalt     = MustParseHex("#1e293b")
	ColorMarking     = MustParseHex("#facc15")
	ColorCitySide    = MustParseHex("#0f172a")
	ColorDesertSide  = MustParseHex("#78350f")
	ColorCityVerge   = MustParseHex("#1e1b4b")
	ColorDesertVerge = MustParseHex("#451a03")
	ColorPlayerOne   = MustParseHex("#3b82f6")
	ColorPlayerTwo   = MustParseHex("#f97316")
	ColorBoost       = MustParseHex("#06b6d4")
	ColorRamp        = MustParseHex("#fbbf24")
	ColorTurbo       = MustParseHex("#22c55e")
	ColorOil         = MustParseHex("#000000")
	ColorHealth      = MustParseHex("#ef4444")

	TrafficPalette = []color.RGBA{
		MustParseHex("#94a3b8"),
		MustParseHex("#ef4444"),
		MustParseHex("#10b981"),
		MustParseHex("#ffffff"),
	}
)

// ParseHex parses "#rrggbb" or "#rgb" into an opaque colour
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustParseHex is ParseHex for package-level literals
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats a colour as "#rrggbb"
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
