package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/physics"
	"github.com/golangdaddy/turbonitro/pkg/ui"
	"github.com/golangdaddy/turbonitro/render"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/golangdaddy/turbonitro/session"
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Options wires the host to an already configured session
type Options struct {
	Session  *session.Controller
	Tuning   physics.Tuning
	TickRate int
	Seed     int64
	Logger   zerolog.Logger
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	ctrl     *session.Controller
	renderer *render.Renderer
	loop     *session.Loop
	menu     *ui.Menu
	rng      *rand.Rand
	logger   zerolog.Logger

	currentScreen Screen
	results       chan []models.RaceResult
}

// NewGame creates a new game instance showing the menu
func NewGame(opts Options) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		ctrl:     opts.Session,
		renderer: render.New(rand.New(rand.NewSource(seed+1)), seed, opts.Tuning),
		loop:     session.NewLoop(opts.TickRate),
		menu:     ui.NewMenu(),
		rng:      rng,
		logger:   opts.Logger.With().Str("component", "game").Logger(),
		results:  make(chan []models.RaceResult, 1),
	}
	// Results fire inside Tick; the race screen picks them up on its next Update
	g.ctrl.OnResults(func(rs []models.RaceResult) {
		select {
		case g.results <- rs:
		default:
		}
	})
	g.showMenu()
	return g
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the fixed logical canvas; Ebitengine scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(road.CanvasWidth), int(road.CanvasHeight)
}

func (g *Game) showMenu() {
	g.currentScreen = ui.NewMenuScreen(g.menu, g.rng, g.startRace)
}

// startRace hands the menu selection to the session and switches to the race
func (g *Game) startRace(cfg models.RaceConfig) error {
	if err := g.ctrl.Start(cfg); err != nil {
		g.logger.Warn().Err(err).Msg("Could not start race")
		return err
	}
	// Drop anything left over from the previous race
	select {
	case <-g.results:
	default:
	}
	g.loop.Reset()
	g.currentScreen = newRaceScreen(g, cfg)
	return nil
}

// leaveRace returns to the menu from the pause overlay or the results screen
func (g *Game) leaveRace() {
	if err := g.ctrl.Leave(); err != nil {
		g.logger.Warn().Err(err).Msg("Could not leave race")
		return
	}
	g.showMenu()
}
