package session

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/turbonitro/audio"
	"github.com/golangdaddy/turbonitro/commentary"
	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/physics"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/golangdaddy/turbonitro/traffic"
)

const never = 1 << 30

func onePlayer() models.RaceConfig {
	return models.RaceConfig{
		Players: []models.PlayerConfig{{Name: "Viper", Color: "#3b82f6"}},
		Theme:   models.ThemeCity,
		Device:  models.DeviceComputer,
	}
}

func twoPlayers() models.RaceConfig {
	cfg := onePlayer()
	cfg.Players = append(cfg.Players, models.PlayerConfig{Name: "Ghost", Color: "#f97316"})
	return cfg
}

// quiet returns options with no traffic or pads so tests control the road
func quiet(rec *audio.Recorder) Options {
	opts := DefaultOptions()
	opts.Traffic = traffic.Config{Interval: never, SpeedMin: 5, SpeedMax: 12}
	opts.FeatureInterval = 0
	opts.Rand = rand.New(rand.NewSource(42))
	opts.Audio = rec
	return opts
}

func started(t *testing.T, opts Options, cfg models.RaceConfig) *Controller {
	t.Helper()
	c := New(opts)
	require.NoError(t, c.Start(cfg))
	return c
}

func ticks(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

type narratorFunc func(context.Context, []models.RaceResult) (string, error)

func (f narratorFunc) Narrate(ctx context.Context, rs []models.RaceResult) (string, error) {
	return f(ctx, rs)
}

func TestStart(t *testing.T) {
	t.Run("rejects invalid config", func(t *testing.T) {
		c := New(quiet(&audio.Recorder{}))
		err := c.Start(models.RaceConfig{Theme: models.ThemeCity, Device: models.DeviceComputer})
		assert.ErrorIs(t, err, models.ErrNoPlayers)
		assert.Equal(t, StateMenu, c.State())
	})

	t.Run("seeds players on their lanes", func(t *testing.T) {
		rec := &audio.Recorder{}
		c := started(t, quiet(rec), twoPlayers())

		snap := c.Snapshot()
		require.Len(t, snap.Players, 2)
		for i, p := range snap.Players {
			assert.InDelta(t, road.LaneCenterX(i, 0), p.X, 1e-9)
			assert.Equal(t, road.PlayerScreenY, p.Y)
			assert.Equal(t, 100.0, p.Health)
			assert.Equal(t, 0.0, p.Boost)
			assert.Equal(t, 1, p.Lap)
		}
		assert.Equal(t, input.Primary(), snap.Players[0].Controls)
		assert.Equal(t, input.Secondary(), snap.Players[1].Controls)
		assert.Equal(t, "Ghost", snap.Players[1].Name)
		assert.Equal(t, StateRacing, snap.State)
		assert.Equal(t, models.ThemeCity, snap.Theme)
		assert.True(t, rec.Running())
	})

	t.Run("only from menu", func(t *testing.T) {
		c := started(t, quiet(&audio.Recorder{}), onePlayer())
		assert.ErrorIs(t, c.Start(onePlayer()), ErrInvalidTransition)
	})
}

func TestTransitions(t *testing.T) {
	c := New(quiet(&audio.Recorder{}))
	assert.ErrorIs(t, c.TogglePause(), ErrInvalidTransition)
	assert.ErrorIs(t, c.Leave(), ErrInvalidTransition)

	require.NoError(t, c.Start(onePlayer()))
	assert.ErrorIs(t, c.Leave(), ErrInvalidTransition)

	require.NoError(t, c.TogglePause())
	assert.Equal(t, StatePaused, c.State())
	require.NoError(t, c.TogglePause())
	assert.Equal(t, StateRacing, c.State())

	require.NoError(t, c.TogglePause())
	require.NoError(t, c.Leave())
	assert.Equal(t, StateMenu, c.State())
	assert.Empty(t, c.Snapshot().Players)
}

func TestPauseFreezesEverything(t *testing.T) {
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(7))
	opts.FeatureInterval = 30
	c := started(t, opts, twoPlayers())

	c.Keys().Press(input.KeyArrowUp)
	c.Keys().Press(input.KeyW)
	ticks(c, 150)
	require.NoError(t, c.TogglePause())
	before := c.Snapshot()
	require.NotEmpty(t, before.Traffic)

	for i := 0; i < 10; i++ {
		ticks(c, 20)
		require.NoError(t, c.TogglePause())
		require.NoError(t, c.TogglePause())
	}

	after := c.Snapshot()
	assert.Equal(t, before.Players, after.Players)
	assert.Equal(t, before.Traffic, after.Traffic)
	assert.Equal(t, before.Features, after.Features)
	assert.Equal(t, before.Particles, after.Particles)
	assert.Equal(t, before.Shake, after.Shake)
	assert.Equal(t, before.Ticks, after.Ticks)
}

func TestForwardThrottle(t *testing.T) {
	c := started(t, quiet(&audio.Recorder{}), onePlayer())
	c.Keys().Press(input.KeyArrowUp)

	last := c.Snapshot().Players[0]
	for i := 0; i < 300; i++ {
		c.Tick()
		p := c.Snapshot().Players[0]
		assert.Greater(t, p.Distance, last.Distance, "tick %d", i)
		assert.LessOrEqual(t, p.Speed, physics.Default().MaxSpeed)
		last = p
	}
	assert.Greater(t, last.Speed, 5.0)
	assert.Equal(t, StateRacing, c.State())
}

func TestBoostDrainsAndClears(t *testing.T) {
	rec := &audio.Recorder{}
	c := started(t, quiet(rec), onePlayer())
	c.players[0].Boost = 100
	c.Keys().Press(input.KeyShiftRight)

	c.Tick()
	p := c.Snapshot().Players[0]
	assert.True(t, p.Boosting)
	assert.NotEmpty(t, c.Snapshot().Particles, "boost leaves a trail")

	ticks(c, 123)
	assert.True(t, c.Snapshot().Players[0].Boosting)

	c.Tick()
	p = c.Snapshot().Players[0]
	assert.False(t, p.Boosting)
	assert.Equal(t, 0.0, p.Boost)
	assert.LessOrEqual(t, p.Speed, physics.Default().BoostMaxSpeed)

	ticks(c, 10)
	assert.Equal(t, 1, rec.Count(audio.EventBoost))
}

func TestTrafficCollision(t *testing.T) {
	t.Run("grounded player is hit once", func(t *testing.T) {
		rec := &audio.Recorder{}
		c := started(t, quiet(rec), onePlayer())
		p := c.players[0]
		c.traffic = []models.TrafficCar{{ID: 99, X: p.X, Y: p.Y, Lane: 0, Color: models.TrafficPalette[1]}}

		c.Tick()
		snap := c.Snapshot()
		assert.Equal(t, 85.0, snap.Players[0].Health)
		assert.Empty(t, snap.Traffic)
		assert.NotEmpty(t, snap.Particles)
		assert.Equal(t, 20.0, snap.Shake)
		assert.Equal(t, 1, rec.Count(audio.EventCollision))

		c.Tick()
		assert.Equal(t, 85.0, c.Snapshot().Players[0].Health)
		assert.Less(t, c.Snapshot().Shake, 20.0)
	})

	t.Run("airborne player is immune", func(t *testing.T) {
		rec := &audio.Recorder{}
		c := started(t, quiet(rec), onePlayer())
		c.players[0].Airborne = true
		c.players[0].Z = 100
		p := c.players[0]
		c.traffic = []models.TrafficCar{{ID: 5, X: p.X, Y: p.Y, Lane: 0}}

		c.Tick()
		snap := c.Snapshot()
		assert.Equal(t, 100.0, snap.Players[0].Health)
		assert.Len(t, snap.Traffic, 1)
		assert.Zero(t, rec.Count(audio.EventCollision))
	})
}

func TestLanding(t *testing.T) {
	rec := &audio.Recorder{}
	c := started(t, quiet(rec), onePlayer())
	c.players[0].Airborne = true
	c.players[0].Z = 0.1

	c.Tick()
	snap := c.Snapshot()
	assert.False(t, snap.Players[0].Airborne)
	assert.Equal(t, physics.Default().LandingShake, snap.Shake)
	assert.Equal(t, 1, rec.Count(audio.EventLanding))
}

func TestOneWreckDoesNotEndRace(t *testing.T) {
	c := started(t, quiet(&audio.Recorder{}), twoPlayers())
	c.players[0].Health = 0

	ticks(c, 50)
	assert.Equal(t, StateRacing, c.State())
	assert.Nil(t, c.Results())

	frozen := c.Snapshot().Players[0]
	c.Keys().Press(input.KeyArrowUp)
	ticks(c, 10)
	assert.Equal(t, frozen, c.Snapshot().Players[0], "wrecked car stops updating")
}

func TestRaceEndsExactlyOnce(t *testing.T) {
	rec := &audio.Recorder{}
	opts := quiet(rec)
	opts.ResultDelay = 3
	c := started(t, opts, twoPlayers())

	var emitted [][]models.RaceResult
	c.OnResults(func(rs []models.RaceResult) {
		emitted = append(emitted, rs)
	})

	c.players[0].Distance, c.players[0].Lap, c.players[0].TopSpeed = 4200, road.LapAt(4200), 20
	c.players[1].Distance, c.players[1].Lap, c.players[1].TopSpeed = 5100, road.LapAt(5100), 25
	c.Tick()
	assert.Equal(t, StateRacing, c.State())

	c.players[0].Health = 0
	c.players[1].Health = 0
	c.Tick()
	assert.Equal(t, StateResults, c.State())
	assert.Empty(t, emitted, "results wait for the delay")
	assert.False(t, rec.Running())

	results := c.Results()
	require.Len(t, results, 2)
	assert.Equal(t, models.RaceResult{PlayerName: "Ghost", Distance: 51, TopSpeed: 300, Laps: 2, Rank: 1}, results[0])
	assert.Equal(t, models.RaceResult{PlayerName: "Viper", Distance: 42, TopSpeed: 240, Laps: 1, Rank: 2}, results[1])

	ticks(c, 2)
	assert.Empty(t, emitted)
	c.Tick()
	require.Len(t, emitted, 1)
	assert.Equal(t, results, emitted[0])
	assert.True(t, c.Emitted())

	ticks(c, 100)
	assert.Len(t, emitted, 1)
	assert.Equal(t, 1, rec.Count(audio.EventVictory))
	assert.Equal(t, StateResults, c.State())

	require.NoError(t, c.Leave())
	assert.Nil(t, c.Results())
	require.NoError(t, c.Start(onePlayer()))
	c.players[0].Health = 0
	ticks(c, 4)
	assert.Len(t, emitted, 2, "next race emits again")
}

func TestZeroDelayEmitsOnTerminalTick(t *testing.T) {
	opts := quiet(&audio.Recorder{})
	opts.ResultDelay = 0
	c := started(t, opts, onePlayer())
	calls := 0
	c.OnResults(func([]models.RaceResult) { calls++ })

	c.players[0].Health = 0
	c.Tick()
	assert.Equal(t, 1, calls)
}

func TestResultsDelayOnlyDecaysCosmetics(t *testing.T) {
	opts := quiet(&audio.Recorder{})
	opts.ResultDelay = 90
	c := started(t, opts, onePlayer())
	p := c.players[0]
	c.traffic = []models.TrafficCar{{ID: 1, X: p.X, Y: p.Y}}
	c.players[0].Health = 10

	c.Tick()
	require.Equal(t, StateResults, c.State())
	before := c.Snapshot()
	require.NotEmpty(t, before.Particles)

	ticks(c, 10)
	after := c.Snapshot()
	assert.Equal(t, before.Players, after.Players)
	assert.Equal(t, before.Ticks, after.Ticks)
	assert.Less(t, after.Shake, before.Shake)
	assert.Less(t, after.Particles[0].Life, before.Particles[0].Life)
}

func TestCommentary(t *testing.T) {
	t.Run("narrated", func(t *testing.T) {
		opts := quiet(&audio.Recorder{})
		opts.Commentator = commentary.NewCommentator(narratorFunc(func(context.Context, []models.RaceResult) (string, error) {
			return "Rubber on fire!", nil
		}), time.Second, zerolog.Nop())
		c := started(t, opts, onePlayer())

		_, ok := c.Commentary()
		assert.False(t, ok)

		c.players[0].Health = 0
		c.Tick()
		require.Eventually(t, func() bool {
			_, ok := c.Commentary()
			return ok
		}, 2*time.Second, 5*time.Millisecond)
		text, _ := c.Commentary()
		assert.Equal(t, "Rubber on fire!", text)
	})

	t.Run("leave cancels and clears", func(t *testing.T) {
		opts := quiet(&audio.Recorder{})
		opts.Commentator = commentary.NewCommentator(narratorFunc(func(ctx context.Context, _ []models.RaceResult) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}), time.Hour, zerolog.Nop())
		c := started(t, opts, onePlayer())
		c.players[0].Health = 0
		c.Tick()

		require.NoError(t, c.Leave())
		_, ok := c.Commentary()
		assert.False(t, ok)
	})
}

func TestTrafficPopulation(t *testing.T) {
	opts := quiet(&audio.Recorder{})
	opts.Traffic = traffic.DefaultConfig()
	c := started(t, opts, onePlayer())

	ticks(c, 59)
	assert.Empty(t, c.Snapshot().Traffic)
	c.Tick()
	require.Len(t, c.Snapshot().Traffic, 1)
	assert.Equal(t, int64(0), c.Snapshot().Traffic[0].ID)

	ticks(c, 60)
	tr := c.Snapshot().Traffic
	require.NotEmpty(t, tr)
	assert.Equal(t, int64(1), tr[len(tr)-1].ID)
	assert.Equal(t, traffic.SpawnY, tr[len(tr)-1].Y)
}

func TestInvariantsUnderPlay(t *testing.T) {
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(2024))
	opts.FeatureInterval = 45
	c := started(t, opts, twoPlayers())
	tune := physics.Default()

	keys := []input.Key{
		input.KeyArrowUp, input.KeyArrowDown, input.KeyArrowLeft, input.KeyArrowRight, input.KeyShiftRight,
		input.KeyW, input.KeyS, input.KeyA, input.KeyD, input.KeyShiftLeft,
	}
	driver := rand.New(rand.NewSource(99))
	laps := []int{1, 1}

	for i := 0; i < 3000 && c.State() == StateRacing; i++ {
		if i%15 == 0 {
			for _, k := range keys {
				c.Keys().Set(k, driver.Float64() < 0.4)
			}
			c.Keys().Press(input.KeyArrowUp)
			c.Keys().Press(input.KeyW)
		}
		c.Tick()

		for slot, p := range c.Snapshot().Players {
			assert.GreaterOrEqual(t, p.Health, 0.0)
			assert.LessOrEqual(t, p.Health, 100.0)
			assert.GreaterOrEqual(t, p.Boost, 0.0)
			assert.LessOrEqual(t, p.Boost, 100.0)
			assert.GreaterOrEqual(t, p.Speed, 0.0)
			assert.LessOrEqual(t, p.Speed, tune.SpeedCap(p.Boosting)+1e-9)
			assert.GreaterOrEqual(t, p.Distance, 0.0)
			assert.Equal(t, road.LapAt(p.Distance), p.Lap)
			assert.GreaterOrEqual(t, p.Lap, laps[slot])
			laps[slot] = p.Lap
		}
	}
}

func TestComputeResults(t *testing.T) {
	players := []models.PlayerCar{
		{Name: "A", Distance: 999, TopSpeed: 10.5, Lap: 1},
		{Name: "B", Distance: 12345, TopSpeed: 45, Lap: 3},
		{Name: "C", Distance: 999, TopSpeed: 1, Lap: 1},
	}
	got := ComputeResults(players, physics.Default())
	require.Len(t, got, 3)

	assert.Equal(t, "B", got[0].PlayerName)
	assert.Equal(t, 123, got[0].Distance)
	assert.Equal(t, 540, got[0].TopSpeed)
	assert.Equal(t, 3, got[0].Laps)

	assert.Equal(t, "A", got[1].PlayerName, "ties keep slot order")
	assert.Equal(t, 126, got[1].TopSpeed)
	assert.Equal(t, "C", got[2].PlayerName)

	for i, r := range got {
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Empty(t, ComputeResults(nil, physics.Default()))
}
