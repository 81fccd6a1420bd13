package render

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Face is the bitmap font used for every label
var Face = text.NewGoXFace(bitmapfont.Face)

// TextWidth returns the rendered width of s at scale
func TextWidth(s string, scale float64) float64 {
	return text.Advance(s, Face) * scale
}

// Text draws s with its top-left corner at (x, y)
func Text(dst *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, Face, op)
}

// TextCentered draws s horizontally centred on cx
func TextCentered(dst *ebiten.Image, s string, cx, y, scale float64, c color.Color) {
	Text(dst, s, cx-TextWidth(s, scale)/2, y, scale, c)
}
