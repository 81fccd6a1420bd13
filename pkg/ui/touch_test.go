package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/turbonitro/input"
)

func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

func TestTouchLayout(t *testing.T) {
	one := TouchLayout(1)
	require.Len(t, one, 5)
	two := TouchLayout(2)
	require.Len(t, two, 10)

	canvas := image.Rect(0, 0, 1200, 800)
	for i, a := range two {
		assert.True(t, a.Rect.In(canvas), a.Label)
		assert.False(t, a.Rect.Overlaps(PauseButton), a.Label)
		for _, b := range two[i+1:] {
			assert.False(t, a.Rect.Overlaps(b.Rect), "%s overlaps %s", a.Label, b.Label)
		}
	}

	keys := map[input.Key]bool{}
	for _, b := range two {
		keys[b.Key] = true
	}
	for _, cs := range []input.ControlScheme{input.Primary(), input.Secondary()} {
		for _, k := range []input.Key{cs.Up, cs.Down, cs.Left, cs.Right, cs.Boost} {
			assert.True(t, keys[k], k)
		}
	}
}

func TestHit(t *testing.T) {
	buttons := TouchLayout(1)
	k, ok := Hit(buttons, center(buttons[0].Rect))
	assert.True(t, ok)
	assert.Equal(t, input.KeyArrowUp, k)

	_, ok = Hit(buttons, image.Pt(600, 100))
	assert.False(t, ok)
}

func TestTouchPadApply(t *testing.T) {
	tp := NewTouchPad(2)
	ks := input.NewKeySet()
	ks.Press(input.KeyEscape)

	gas, _ := findButton(tp.Buttons, input.KeyArrowUp)
	nitro, _ := findButton(tp.Buttons, input.KeyShiftRight)
	left2, _ := findButton(tp.Buttons, input.KeyA)

	tp.Apply(ks, []image.Point{center(gas.Rect), center(left2.Rect), image.Pt(600, 100)})
	assert.True(t, ks.Has(input.KeyArrowUp))
	assert.True(t, ks.Has(input.KeyA))
	assert.True(t, tp.Held(input.KeyArrowUp))
	assert.Equal(t, 3, ks.Len())

	// Sliding from gas to nitro releases gas
	tp.Apply(ks, []image.Point{center(nitro.Rect)})
	assert.False(t, ks.Has(input.KeyArrowUp))
	assert.False(t, ks.Has(input.KeyA))
	assert.True(t, ks.Has(input.KeyShiftRight))
	assert.True(t, ks.Has(input.KeyEscape), "keys the pad never held are untouched")

	tp.Apply(ks, nil)
	assert.Equal(t, 1, ks.Len())
}

func findButton(buttons []Button, k input.Key) (Button, bool) {
	for _, b := range buttons {
		if b.Key == k {
			return b, true
		}
	}
	return Button{}, false
}
