package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/pkg/ui"
	"github.com/golangdaddy/turbonitro/session"
)

// KeyboardMap binds physical keys to the logical keys the control schemes read
var KeyboardMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeyShiftRight: input.KeyShiftRight,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyShiftLeft:  input.KeyShiftLeft,
	ebiten.KeyEscape:     input.KeyEscape,
}

// PollKeyboard copies the held state of every mapped key into the set
func PollKeyboard(ks *input.KeySet, pressed func(ebiten.Key) bool) {
	for ek, k := range KeyboardMap {
		ks.Set(k, pressed(ek))
	}
}

// RaceScreen drives the session while a race is on screen
type RaceScreen struct {
	game    *Game
	ctrl    *session.Controller
	device  models.DeviceMode
	touch   *ui.TouchPad
	pause   *ui.PauseOverlay
	results *ui.ResultsScreen
	snap    session.Snapshot
}

func newRaceScreen(g *Game, cfg models.RaceConfig) *RaceScreen {
	rs := &RaceScreen{
		game:   g,
		ctrl:   g.ctrl,
		device: cfg.Device,
	}
	if cfg.Device == models.DeviceMobile {
		rs.touch = ui.NewTouchPad(len(cfg.Players))
	}
	rs.pause = ui.NewPauseOverlay(rs.togglePause, g.leaveRace)
	return rs
}

// Update reads input, advances the fixed-step loop, and moves to results once they are emitted
func (rs *RaceScreen) Update() error {
	if rs.results != nil {
		return rs.results.Update()
	}

	select {
	case results := <-rs.game.results:
		rs.results = ui.NewResultsScreen(results, rs.ctrl.Commentary, rs.drawWorld, rs.game.leaveRace)
		return nil
	default:
	}

	ks := rs.ctrl.Keys()
	if rs.touch != nil {
		rs.touch.Poll(ks)
	} else {
		PollKeyboard(ks, ebiten.IsKeyPressed)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		(rs.touch != nil && rs.touch.PausePressed()) {
		rs.togglePause()
		return nil
	}

	if rs.ctrl.State() == session.StatePaused {
		return rs.pause.Update()
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	rs.game.loop.Advance(dt, rs.ctrl.Tick)
	return nil
}

func (rs *RaceScreen) togglePause() {
	switch rs.ctrl.State() {
	case session.StateRacing, session.StatePaused:
	default:
		return
	}
	if err := rs.ctrl.TogglePause(); err != nil {
		rs.game.logger.Warn().Err(err).Msg("Could not toggle pause")
		return
	}
	rs.pause.Selected = ui.ChoiceResume
	rs.game.loop.Reset()
}

// Draw renders the race, then whichever overlay is active
func (rs *RaceScreen) Draw(screen *ebiten.Image) {
	if rs.results != nil {
		rs.results.Draw(screen)
		return
	}
	rs.snap = rs.ctrl.Snapshot()
	rs.drawWorld(screen)
	if rs.snap.State == session.StatePaused {
		rs.pause.Draw(screen)
		return
	}
	if rs.touch != nil && rs.snap.State == session.StateRacing {
		rs.touch.Draw(screen)
	}
}

func (rs *RaceScreen) drawWorld(screen *ebiten.Image) {
	rs.game.renderer.Draw(screen, rs.snap)
}
