package physics

import (
	"testing"

	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCar() *models.PlayerCar {
	return &models.PlayerCar{
		X:      road.LaneCenterX(1, 0),
		Y:      road.PlayerScreenY,
		Health: 100,
		Lap:    1,
		Lane:   1,
	}
}

// recenter keeps the car on its lane so handling tests are not disturbed by the curve.
func recenter(p *models.PlayerCar) {
	p.X = road.LaneCenterX(p.Lane, p.Distance)
	p.VX = 0
}

func TestStepPlayer_ForwardApproachesMaxSpeed(t *testing.T) {
	tun := Default()
	p := newCar()

	prevSpeed, prevDist := 0.0, 0.0
	for i := 0; i < 400; i++ {
		StepPlayer(p, input.Intent{Up: true}, tun)
		recenter(p)

		assert.GreaterOrEqual(t, p.Speed, prevSpeed)
		assert.Greater(t, p.Distance, prevDist)
		assert.LessOrEqual(t, p.Speed, tun.MaxSpeed)
		prevSpeed, prevDist = p.Speed, p.Distance
	}
	assert.InDelta(t, tun.MaxSpeed, p.Speed, 1e-9)
	assert.Equal(t, models.MeterMax, p.Boost, "boost charges while accelerating")
	assert.InDelta(t, tun.MaxSpeed, p.TopSpeed, 1e-9)
}

func TestStepPlayer_BoostDrainsOverFixedTicks(t *testing.T) {
	tun := Default()
	p := newCar()
	p.Boost = 100

	ticks := int(100 / tun.BoostConsumeRate)
	require.Equal(t, 125, ticks)

	ev := StepPlayer(p, input.Intent{Boost: true}, tun)
	recenter(p)
	assert.True(t, ev.BoostStarted)
	assert.True(t, p.Boosting)

	for i := 2; i < ticks; i++ {
		ev = StepPlayer(p, input.Intent{Boost: true}, tun)
		recenter(p)
		assert.False(t, ev.BoostStarted, "activation is edge-triggered")
		assert.True(t, p.Boosting, "tick %d", i)
		assert.LessOrEqual(t, p.Speed, tun.BoostMaxSpeed)
	}
	assert.InDelta(t, tun.BoostMaxSpeed, p.Speed, 1e-9)

	StepPlayer(p, input.Intent{Boost: true}, tun)
	assert.False(t, p.Boosting)
	assert.Equal(t, 0.0, p.Boost)
	assert.LessOrEqual(t, p.Speed, tun.MaxSpeed)
	assert.InDelta(t, tun.BoostMaxSpeed, p.TopSpeed, 1e-9)
}

func TestStepPlayer_BoostNeedsFullMeter(t *testing.T) {
	p := newCar()
	p.Boost = 99.9
	StepPlayer(p, input.Intent{Boost: true}, Default())
	assert.False(t, p.Boosting)
}

func TestStepPlayer_BrakeAndCoast(t *testing.T) {
	tun := Default()
	p := newCar()
	p.Speed = 10

	StepPlayer(p, input.Intent{Down: true}, tun)
	assert.InDelta(t, 9.5, p.Speed, 1e-9)

	recenter(p)
	StepPlayer(p, input.Intent{}, tun)
	assert.InDelta(t, 9.5*0.99, p.Speed, 1e-9)

	p.Speed = 0.1
	recenter(p)
	StepPlayer(p, input.Intent{Down: true}, tun)
	assert.Equal(t, 0.0, p.Speed)
}

func TestStepPlayer_Steering(t *testing.T) {
	tun := Default()
	tun.CurvatureGain = 0
	p := newCar()
	x0 := p.X

	StepPlayer(p, input.Intent{Left: true}, tun)
	assert.InDelta(t, -1.2*0.85, p.VX, 1e-9)
	assert.InDelta(t, x0-1.2*0.85, p.X, 1e-9)

	StepPlayer(p, input.Intent{Left: true, Right: true}, tun)
	assert.InDelta(t, -1.2*0.85*0.85, p.VX, 1e-9)
}

func TestStepPlayer_JumpAndLanding(t *testing.T) {
	tun := Default()
	p := newCar()
	require.True(t, p.Launch(tun.JumpForce))

	landings := 0
	for i := 0; i < 100; i++ {
		ev := StepPlayer(p, input.Intent{}, tun)
		recenter(p)
		assert.GreaterOrEqual(t, p.Z, 0.0)
		if ev.Landed {
			landings++
		}
	}
	assert.Equal(t, 1, landings)
	assert.False(t, p.Airborne)
	assert.Zero(t, p.VZ)
}

func TestStepPlayer_Offroad(t *testing.T) {
	tun := Default()
	tun.CurvatureGain = 0
	p := newCar()
	p.X = 0
	p.Speed = 10

	ev := StepPlayer(p, input.Intent{}, tun)
	assert.True(t, ev.Offroad)
	assert.InDelta(t, 10*0.99*0.98, p.Speed, 1e-9)
	assert.InDelta(t, 99.95, p.Health, 1e-9)
	left, _ := road.Band(0)
	assert.Equal(t, left-tun.OffroadOverrun, p.X)

	// Slow cars are not damaged off-road.
	p.Speed = 3
	p.X = 0
	StepPlayer(p, input.Intent{}, tun)
	assert.InDelta(t, 99.95, p.Health, 1e-9)
}

func TestStepPlayer_InactiveCarIsFrozen(t *testing.T) {
	p := newCar()
	p.Health = 0
	p.Speed = 10
	before := *p
	StepPlayer(p, input.Intent{Up: true}, Default())
	assert.Equal(t, before, *p)
}

func TestStepPlayer_LapTracksDistance(t *testing.T) {
	tun := Default()
	p := newCar()
	p.Speed = 25
	lap := 1
	for i := 0; i < 1000; i++ {
		StepPlayer(p, input.Intent{Up: true}, tun)
		recenter(p)
		assert.Equal(t, road.LapAt(p.Distance), p.Lap)
		assert.GreaterOrEqual(t, p.Lap, lap)
		lap = p.Lap
	}
	assert.Equal(t, 6, p.Lap)
}

func TestStepTraffic(t *testing.T) {
	tun := Default()
	tc := &models.TrafficCar{Y: 100, Speed: 8, Lane: 2}
	StepTraffic(tc, 1000, 20, tun)

	assert.InDelta(t, road.LaneCenterX(2, 1000+road.CanvasHeight-100), tc.X, 1e-9)
	assert.InDelta(t, 100+8-20*0.5, tc.Y, 1e-9)
}

func TestStepTrafficFlow(t *testing.T) {
	tun := Default()
	tests := []struct {
		name    string
		speed   float64
		fastest float64
		wantY   float64
	}{
		{"parked player, traffic drives down the screen", 8, 0, 108},
		{"fast player overtakes slow traffic", 8, 25, 95.5},
		{"traffic matching half the leader holds position", 10, 20, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := &models.TrafficCar{Y: 100, Speed: tt.speed}
			StepTraffic(tc, 0, tt.fastest, tun)
			assert.InDelta(t, tt.wantY, tc.Y, 1e-9)
		})
	}
}

func TestTuningValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero boost consume", func(t *Tuning) { t.BoostConsumeRate = 0 }},
		{"friction at one", func(t *Tuning) { t.Friction = 1 }},
		{"friction above one", func(t *Tuning) { t.Friction = 1.2 }},
		{"zero lateral friction", func(t *Tuning) { t.LateralFriction = 0 }},
		{"negative acceleration", func(t *Tuning) { t.Acceleration = -0.2 }},
		{"zero max speed", func(t *Tuning) { t.MaxSpeed = 0 }},
		{"boost cap below cruise", func(t *Tuning) { t.BoostMaxSpeed = t.MaxSpeed - 1 }},
		{"negative lookahead", func(t *Tuning) { t.Lookahead = -1 }},
		{"inverted traffic speeds", func(t *Tuning) { t.TrafficSpeedMax = t.TrafficSpeedMin - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := Default()
			tt.mutate(&tun)
			assert.ErrorIs(t, tun.Validate(), ErrInvalidTuning)
		})
	}
}

func TestStepFeature(t *testing.T) {
	f := &models.Feature{Y: 0, Lane: 3}
	StepFeature(f, 500, 12)
	assert.Equal(t, 12.0, f.Y)
	assert.InDelta(t, road.LaneCenterX(3, 500+road.CanvasHeight-12), f.X, 1e-9)
}

func TestDecayShake(t *testing.T) {
	tun := Default()
	assert.InDelta(t, 18.0, DecayShake(20, tun), 1e-9)
	assert.Equal(t, 0.0, DecayShake(0.005, tun))
	assert.Equal(t, 0.0, DecayShake(0, tun))
}

func TestDisplaySpeed(t *testing.T) {
	assert.Equal(t, 300, Default().DisplaySpeed(25))
	assert.Equal(t, 45.0, Default().SpeedCap(true))
}
