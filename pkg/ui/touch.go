package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/render"
	"github.com/golangdaddy/turbonitro/road"
)

// Button is an on-screen control bound to a logical key
type Button struct {
	Rect  image.Rectangle
	Key   input.Key
	Label string
}

const (
	touchSize   = 90
	touchGap    = 10
	touchMargin = 24
)

// PauseButton is the on-screen pause control in MOBILE mode
var PauseButton = image.Rect(int(road.CanvasWidth)-touchMargin-70, touchMargin, int(road.CanvasWidth)-touchMargin, touchMargin+50)

// TouchLayout places a control cluster per player: player one bottom right, player two bottom left
func TouchLayout(players int) []Button {
	var buttons []Button
	for slot := 0; slot < players && slot < 2; slot++ {
		cs := input.SchemeFor(slot)
		// Cluster origin is the top-left of a 3x2 grid
		ox := int(road.CanvasWidth) - touchMargin - 3*touchSize - 2*touchGap
		if slot == 1 {
			ox = touchMargin
		}
		oy := int(road.CanvasHeight) - touchMargin - 2*touchSize - touchGap
		cell := func(col, row int) image.Rectangle {
			x := ox + col*(touchSize+touchGap)
			y := oy + row*(touchSize+touchGap)
			return image.Rect(x, y, x+touchSize, y+touchSize)
		}
		buttons = append(buttons,
			Button{Rect: cell(1, 0), Key: cs.Up, Label: "GAS"},
			Button{Rect: cell(0, 1), Key: cs.Left, Label: "<"},
			Button{Rect: cell(1, 1), Key: cs.Down, Label: "BRAKE"},
			Button{Rect: cell(2, 1), Key: cs.Right, Label: ">"},
			Button{Rect: cell(2, 0), Key: cs.Boost, Label: "NITRO"},
		)
	}
	return buttons
}

// Hit returns the key of the button under a point
func Hit(buttons []Button, p image.Point) (input.Key, bool) {
	for _, b := range buttons {
		if p.In(b.Rect) {
			return b.Key, true
		}
	}
	return "", false
}

// TouchPad presses and releases logical keys from on-screen touches
type TouchPad struct {
	Buttons []Button
	held    map[input.Key]bool
	points  []image.Point
	ids     []ebiten.TouchID
}

// NewTouchPad creates the controls for a number of players
func NewTouchPad(players int) *TouchPad {
	return &TouchPad{
		Buttons: TouchLayout(players),
		held:    make(map[input.Key]bool),
	}
}

// Apply syncs the key set with the buttons under the given points.
// Keys held by the pad but no longer touched are released; other keys are left alone.
func (tp *TouchPad) Apply(ks *input.KeySet, points []image.Point) {
	now := make(map[input.Key]bool, len(points))
	for _, p := range points {
		if k, ok := Hit(tp.Buttons, p); ok {
			now[k] = true
		}
	}
	for k := range tp.held {
		if !now[k] {
			ks.Release(k)
		}
	}
	for k := range now {
		ks.Press(k)
	}
	tp.held = now
}

// Held reports whether the pad is holding a key
func (tp *TouchPad) Held(k input.Key) bool {
	return tp.held[k]
}

// Poll reads current touches and the left mouse button into the key set
func (tp *TouchPad) Poll(ks *input.KeySet) {
	tp.points = tp.points[:0]
	tp.ids = ebiten.AppendTouchIDs(tp.ids[:0])
	for _, id := range tp.ids {
		x, y := ebiten.TouchPosition(id)
		tp.points = append(tp.points, image.Pt(x, y))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		tp.points = append(tp.points, image.Pt(x, y))
	}
	tp.Apply(ks, tp.points)
}

// PausePressed reports whether the pause button was tapped this frame
func (tp *TouchPad) PausePressed() bool {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if image.Pt(x, y).In(PauseButton) {
			return true
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return image.Pt(x, y).In(PauseButton)
	}
	return false
}

// Draw renders the buttons, lit while held
func (tp *TouchPad) Draw(screen *ebiten.Image) {
	for _, b := range tp.Buttons {
		bg := color.RGBA{255, 255, 255, 40}
		if tp.held[b.Key] {
			bg = color.RGBA{34, 211, 238, 120}
		}
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, color.RGBA{255, 255, 255, 120}, false)
		render.TextCentered(screen, b.Label, float64(r.Min.X+r.Dx()/2), float64(r.Min.Y+r.Dy()/2-8), 1.2, color.White)
	}
	p := PauseButton
	vector.DrawFilledRect(screen, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), color.RGBA{0, 0, 0, 120}, false)
	render.TextCentered(screen, "II", float64(p.Min.X+p.Dx()/2), float64(p.Min.Y+16), 1.5, color.White)
}
