package session

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/golangdaddy/turbonitro/audio"
	"github.com/golangdaddy/turbonitro/collision"
	"github.com/golangdaddy/turbonitro/commentary"
	"github.com/golangdaddy/turbonitro/feature"
	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/logging"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/particle"
	"github.com/golangdaddy/turbonitro/physics"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/golangdaddy/turbonitro/telemetry"
	"github.com/golangdaddy/turbonitro/traffic"
)

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	Tuning          physics.Tuning
	Rules           collision.Rules
	Traffic         traffic.Config
	FeatureInterval int // Ticks between road pads, 0 disables them
	ResultDelay     int // Ticks between the terminal tick and result emission
	MaxParticles    int

	Rand        *rand.Rand
	Keys        *input.KeySet
	Audio       audio.Sink
	Commentator *commentary.Commentator // nil skips commentary
	Metrics     *telemetry.Metrics
	Logger      zerolog.Logger
}

// DefaultOptions returns stock handling with a 1.5 second result delay at 60 ticks per second
func DefaultOptions() Options {
	return Options{
		Tuning:          physics.Default(),
		Rules:           collision.DefaultRules(),
		Traffic:         traffic.DefaultConfig(),
		FeatureInterval: 240,
		ResultDelay:     90,
		MaxParticles:    particle.DefaultMax,
		Logger:          zerolog.Nop(),
	}
}

// Snapshot is a read-only copy of everything the renderer needs
type Snapshot struct {
	State        State
	Theme        models.Theme
	Device       models.DeviceMode
	Players      []models.PlayerCar
	Traffic      []models.TrafficCar
	Features     []models.Feature
	Particles    []models.Particle
	Shake        float64
	LeadDistance float64
	Ticks        int
}

// Controller owns one race: the tick loop, pause gate, end detection and results.
// Tick and the state transitions are meant to be called from a single host loop;
// the key set may be written from anywhere.
type Controller struct {
	mu   sync.Mutex
	opts Options
	rng  *rand.Rand
	keys *input.KeySet

	logger  zerolog.Logger
	tickLog zerolog.Logger

	state     State
	race      models.RaceConfig
	players   []models.PlayerCar
	traffic   []models.TrafficCar
	features  []models.Feature
	particles *particle.System
	cars      *traffic.Spawner
	pads      *feature.Spawner
	shake     float64
	ticks     int

	results   []models.RaceResult
	countdown int
	emitted   bool
	listeners []func([]models.RaceResult)

	commentaryCh <-chan string
	commentary   string
	haveComment  bool
}

// New creates a controller in the Menu state
func New(opts Options) *Controller {
	def := DefaultOptions()
	if opts.Tuning == (physics.Tuning{}) {
		opts.Tuning = def.Tuning
	}
	if opts.Rules == (collision.Rules{}) {
		opts.Rules = def.Rules
	}
	if opts.Traffic == (traffic.Config{}) {
		opts.Traffic = def.Traffic
	}
	if opts.ResultDelay < 0 {
		opts.ResultDelay = 0
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Keys == nil {
		opts.Keys = input.NewKeySet()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}

	logger := opts.Logger.With().Str("component", "session").Logger()
	return &Controller{
		opts:      opts,
		rng:       opts.Rand,
		keys:      opts.Keys,
		logger:    logger,
		tickLog:   logging.Sampled(logger),
		particles: particle.NewSystem(opts.MaxParticles, opts.Rand),
	}
}

// Keys is the pressed-key set read every tick
func (c *Controller) Keys() *input.KeySet {
	return c.keys
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start validates the race configuration and begins racing from the Menu
func (c *Controller) Start(cfg models.RaceConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateMenu {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, c.state)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid race config: %w", err)
	}

	c.reset()
	c.race = cfg
	c.players = make([]models.PlayerCar, len(cfg.Players))
	for i, pc := range cfg.Players {
		col, _ := models.ParseHex(pc.Color)
		c.players[i] = models.PlayerCar{
			X:        road.LaneCenterX(i, 0),
			Y:        road.PlayerScreenY,
			Lap:      road.LapAt(0),
			Health:   models.MeterMax,
			Lane:     i,
			Name:     pc.Name,
			Color:    col,
			Controls: input.SchemeFor(i),
		}
	}
	c.cars = traffic.NewSpawner(c.opts.Traffic, c.rng)
	c.pads = feature.NewSpawner(c.opts.FeatureInterval, c.rng)
	c.state = StateRacing
	c.keys.Clear()
	c.opts.Audio.Start()

	ev := c.logger.Info().Str("theme", string(cfg.Theme)).Str("device", string(cfg.Device))
	for i, p := range cfg.Players {
		ev = ev.Str(fmt.Sprintf("player%d", i+1), p.Name)
	}
	ev.Msg("Race started")
	return nil
}

// TogglePause switches between Racing and Paused
func (c *Controller) TogglePause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateRacing:
		c.state = StatePaused
		c.opts.Audio.Stop()
		c.logger.Info().Int("tick", c.ticks).Msg("Race paused")
	case StatePaused:
		c.state = StateRacing
		c.opts.Audio.Start()
		c.logger.Info().Int("tick", c.ticks).Msg("Race resumed")
	default:
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, c.state)
	}
	return nil
}

// Leave abandons the race from Paused or Results and returns to the Menu
func (c *Controller) Leave() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePaused && c.state != StateResults {
		return fmt.Errorf("%w: leave from %s", ErrInvalidTransition, c.state)
	}
	if c.opts.Commentator != nil {
		c.opts.Commentator.Cancel()
	}
	c.opts.Audio.Stop()
	c.logger.Info().Str("from", c.state.String()).Msg("Left race")
	c.reset()
	c.state = StateMenu
	return nil
}

// OnResults registers a callback invoked once per race when results are emitted
func (c *Controller) OnResults(fn func([]models.RaceResult)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Results returns the ranked results once the race has ended, otherwise nil
func (c *Controller) Results() []models.RaceResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.RaceResult(nil), c.results...)
}

// Emitted reports whether this race's results have been delivered
func (c *Controller) Emitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emitted
}

// Commentary polls for the post-race commentary without blocking
func (c *Controller) Commentary() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.haveComment && c.commentaryCh != nil {
		select {
		case s := <-c.commentaryCh:
			c.commentary, c.haveComment = s, true
			c.commentaryCh = nil
		default:
		}
	}
	return c.commentary, c.haveComment
}

// Snapshot copies the latest committed state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:        c.state,
		Theme:        c.race.Theme,
		Device:       c.race.Device,
		Players:      append([]models.PlayerCar(nil), c.players...),
		Traffic:      append([]models.TrafficCar(nil), c.traffic...),
		Features:     append([]models.Feature(nil), c.features...),
		Particles:    c.particles.Live(),
		Shake:        c.shake,
		LeadDistance: leadDistance(c.players),
		Ticks:        c.ticks,
	}
}

// Tick advances the session by one fixed step
func (c *Controller) Tick() {
	c.mu.Lock()
	var emit []func([]models.RaceResult)
	var results []models.RaceResult

	switch c.state {
	case StateRacing:
		c.step()
	case StateResults:
		c.particles.Step()
		c.shake = physics.DecayShake(c.shake, c.opts.Tuning)
		if !c.emitted {
			c.countdown--
		}
	}
	if c.state == StateResults && !c.emitted && c.countdown <= 0 {
		c.emitted = true
		emit = append(emit, c.listeners...)
		results = append([]models.RaceResult(nil), c.results...)
		c.logger.Debug().Int("tick", c.ticks).Msg("Results emitted")
	}
	c.mu.Unlock()

	for _, fn := range emit {
		fn(results)
	}
}

// step runs one racing tick. Caller holds mu.
func (c *Controller) step() {
	t := c.opts.Tuning
	c.ticks++
	c.opts.Metrics.Tick()
	c.shake = physics.DecayShake(c.shake, t)

	// Players
	for i := range c.players {
		p := &c.players[i]
		if !p.Active() {
			continue
		}
		ev := physics.StepPlayer(p, p.Controls.Read(c.keys), t)
		if ev.Landed {
			c.shake = t.LandingShake
			c.opts.Audio.Notify(audio.Event{Kind: audio.EventLanding, Player: i})
		}
		if ev.BoostStarted {
			c.opts.Audio.Notify(audio.Event{Kind: audio.EventBoost, Player: i, Speed: p.Speed, Boosting: true})
		}
		if p.Boosting {
			c.particles.Trail(p.X, p.Y, p.Speed, models.ColorBoost)
		}
	}

	// Interactions
	res := collision.Resolve(c.players, c.traffic, c.particles, c.opts.Rules)
	if res.Shake > 0 {
		c.shake = res.Shake
	}
	for _, e := range res.Events {
		c.opts.Metrics.Collision(e.Kind.String())
		if e.Kind == collision.TrafficHit {
			c.opts.Audio.Notify(audio.Event{Kind: audio.EventCollision, Player: e.Player})
			c.logger.Debug().Int("player", e.Player).Int64("traffic", e.TrafficID).
				Float64("health", c.players[e.Player].Health).Msg("Traffic collision")
		}
	}
	c.traffic = collision.Sweep(c.traffic, res.Removed)

	// World scroll
	lead := leadDistance(c.players)
	fastest, boosting := fastestSpeed(c.players)
	for i := range c.traffic {
		physics.StepTraffic(&c.traffic[i], lead, fastest, t)
	}
	for i := range c.features {
		physics.StepFeature(&c.features[i], lead, fastest)
	}

	var pickups []feature.Pickup
	c.features, pickups = feature.Collect(c.players, c.features, t, c.rng)
	for _, pk := range pickups {
		c.opts.Metrics.Pickup(pk.Type.String())
		c.opts.Audio.Notify(audio.Event{Kind: audio.EventPickup, Player: pk.Player})
		c.logger.Debug().Int("player", pk.Player).Str("feature", pk.Type.String()).Msg("Pad collected")
	}

	// Population
	var spawned *models.TrafficCar
	if c.traffic, spawned = c.cars.Step(c.traffic, lead); spawned != nil {
		c.opts.Metrics.Spawned()
		c.tickLog.Trace().Int64("id", spawned.ID).Int("lane", spawned.Lane).
			Str("type", spawned.Type.String()).Msg("Traffic spawned")
	}
	c.features, _ = c.pads.Step(c.features, lead)

	c.particles.Step()
	c.opts.Audio.Notify(audio.Event{Kind: audio.EventIntensity, Speed: fastest, Boosting: boosting})

	c.tickLog.Trace().Int("tick", c.ticks).Float64("lead", lead).Int("traffic", len(c.traffic)).
		Int("particles", c.particles.Len()).Msg("Tick")

	if allWrecked(c.players) {
		c.finish()
	}
}

// finish moves a race into Results on its terminal tick. Caller holds mu.
func (c *Controller) finish() {
	c.state = StateResults
	c.results = ComputeResults(c.players, c.opts.Tuning)
	c.countdown = c.opts.ResultDelay
	c.opts.Audio.Stop()
	c.opts.Audio.Notify(audio.Event{Kind: audio.EventVictory})

	distances := make([]int, len(c.results))
	for i, r := range c.results {
		distances[i] = r.Distance
	}
	c.opts.Metrics.RaceFinished(string(c.race.Theme), distances...)

	if c.opts.Commentator != nil {
		c.commentaryCh = c.opts.Commentator.Request(c.results)
	}

	ev := c.logger.Info().Int("tick", c.ticks)
	for _, r := range c.results {
		ev = ev.Str(fmt.Sprintf("rank%d", r.Rank), fmt.Sprintf("%s %dKM %dKM/H lap %d", r.PlayerName, r.Distance, r.TopSpeed, r.Laps))
	}
	ev.Msg("Race finished")
}

// reset discards all race state. Caller holds mu.
func (c *Controller) reset() {
	c.race = models.RaceConfig{}
	c.players = nil
	c.traffic = nil
	c.features = nil
	c.particles.Clear()
	c.cars = nil
	c.pads = nil
	c.shake = 0
	c.ticks = 0
	c.results = nil
	c.countdown = 0
	c.emitted = false
	c.commentaryCh = nil
	c.commentary = ""
	c.haveComment = false
}

func leadDistance(players []models.PlayerCar) float64 {
	lead := 0.0
	for _, p := range players {
		lead = math.Max(lead, p.Distance)
	}
	return lead
}

func fastestSpeed(players []models.PlayerCar) (fastest float64, anyBoosting bool) {
	for _, p := range players {
		fastest = math.Max(fastest, p.Speed)
		anyBoosting = anyBoosting || p.Boosting
	}
	return fastest, anyBoosting
}

func allWrecked(players []models.PlayerCar) bool {
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if p.Active() {
			return false
		}
	}
	return true
}
