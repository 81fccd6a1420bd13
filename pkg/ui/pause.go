package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/turbonitro/render"
	"github.com/golangdaddy/turbonitro/road"
)

// PauseChoice is an entry of the pause overlay
type PauseChoice int

const (
	ChoiceResume PauseChoice = iota
	ChoiceLeave
)

func (c PauseChoice) String() string {
	if c == ChoiceLeave {
		return "LEAVE RACE"
	}
	return "RESUME"
}

// PauseOverlay is drawn over the frozen race while paused
type PauseOverlay struct {
	Selected PauseChoice
	onResume func()
	onLeave  func()
}

// NewPauseOverlay creates the overlay with Resume selected
func NewPauseOverlay(onResume, onLeave func()) *PauseOverlay {
	return &PauseOverlay{onResume: onResume, onLeave: onLeave}
}

// Move changes the selection
func (po *PauseOverlay) Move() {
	po.Selected = 1 - po.Selected
}

// Confirm runs the selected action
func (po *PauseOverlay) Confirm() {
	switch po.Selected {
	case ChoiceResume:
		if po.onResume != nil {
			po.onResume()
		}
	case ChoiceLeave:
		if po.onLeave != nil {
			po.onLeave()
		}
	}
}

// Update handles selection keys. Escape is left to the host, which toggles pause.
func (po *PauseOverlay) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		po.Move()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		po.Confirm()
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if c, ok := pauseHit(x, y); ok {
			po.Selected = c
			po.Confirm()
		}
	}
	return nil
}

const (
	pauseButtonW = 320
	pauseButtonH = 56
	pauseTop     = 360
	pauseGap     = 80
)

func pauseButtonY(c PauseChoice) int {
	return pauseTop + int(c)*pauseGap
}

// pauseHit maps a screen point to the button under it
func pauseHit(x, y int) (PauseChoice, bool) {
	left := int(road.CanvasWidth)/2 - pauseButtonW/2
	if x < left || x > left+pauseButtonW {
		return 0, false
	}
	for _, c := range []PauseChoice{ChoiceResume, ChoiceLeave} {
		top := pauseButtonY(c)
		if y >= top && y <= top+pauseButtonH {
			return c, true
		}
	}
	return 0, false
}

// Draw dims the screen and shows the choices
func (po *PauseOverlay) Draw(screen *ebiten.Image) {
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, 150}, false)
	render.TextCentered(screen, "PAUSED", float64(w)/2, 220, 6, color.White)

	for _, c := range []PauseChoice{ChoiceResume, ChoiceLeave} {
		bg := color.RGBA{30, 41, 59, 230}
		if c == po.Selected {
			bg = color.RGBA{37, 99, 235, 255}
		}
		x := float32(w/2 - pauseButtonW/2)
		y := float32(pauseButtonY(c))
		vector.DrawFilledRect(screen, x, y, pauseButtonW, pauseButtonH, bg, false)
		render.TextCentered(screen, c.String(), float64(w)/2, float64(y)+16, 2, color.White)
	}
	render.TextCentered(screen, "ESC to resume", float64(w)/2, 560, 1.2, color.RGBA{150, 200, 255, 255})
}
