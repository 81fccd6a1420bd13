package physics

import (
	"math"

	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/road"
)

// boostEpsilon absorbs float drift so a full meter drains in exactly 100/consume ticks
const boostEpsilon = 1e-9

// PlayerEvents reports what happened to a car during one step
type PlayerEvents struct {
	Landed       bool
	BoostStarted bool
	Offroad      bool
}

// StepPlayer advances one active player car by one tick.
// Inactive cars (health <= 0) are left untouched.
func StepPlayer(p *models.PlayerCar, in input.Intent, t Tuning) PlayerEvents {
	var ev PlayerEvents
	if !p.Active() {
		return ev
	}

	// Vertical
	if p.Airborne {
		p.VZ -= t.Gravity
		p.Z += p.VZ
		if p.Z <= 0 {
			p.Z, p.VZ = 0, 0
			p.Airborne = false
			ev.Landed = true
		}
	}

	// Curvature pull and steering
	startDistance := p.Distance
	p.VX += road.CurvaturePull(startDistance, t.Lookahead, t.CurvatureGain)
	if in.Left {
		p.VX -= t.SteerForce
	}
	if in.Right {
		p.VX += t.SteerForce
	}
	p.VX *= t.LateralFriction
	p.X += p.VX

	// Throttle
	if in.Boost && p.BoostReady() && !p.Boosting {
		p.Boosting = true
		ev.BoostStarted = true
	}
	if p.Boosting {
		p.Speed += t.BoostAcceleration
		p.Boost -= t.BoostConsumeRate
		if p.Boost <= boostEpsilon {
			p.Boost = 0
			p.Boosting = false
		}
	} else {
		switch {
		case in.Up:
			p.Speed += t.Acceleration
			p.AddBoost(t.BoostChargeRate)
		case in.Down:
			p.Speed -= t.Brake
		default:
			p.Speed *= t.Friction
		}
	}
	p.Speed = models.Clamp(p.Speed, 0, t.SpeedCap(p.Boosting))
	p.TopSpeed = math.Max(p.TopSpeed, p.Speed)

	// Progress
	p.Distance += p.Speed
	p.Lap = road.LapAt(p.Distance)

	// Bounds use the band the car started the tick on
	left, right := road.Band(startDistance)
	if p.X < left || p.X > right {
		ev.Offroad = true
		p.Speed *= t.OffroadPenalty
		if p.Speed > t.OffroadMinSpeed {
			p.Damage(t.OffroadDamage)
		}
	}
	p.X = models.Clamp(p.X, left-t.OffroadOverrun, right+t.OffroadOverrun)

	return ev
}

// StepTraffic re-derives a traffic car's lateral position from the lead distance
// and scrolls it relative to the fastest player.
func StepTraffic(tc *models.TrafficCar, leadDistance, fastest float64, t Tuning) {
	rel := road.DistanceAtScreenY(leadDistance, tc.Y)
	tc.X = road.LaneCenterX(tc.Lane, rel)
	tc.Y += tc.Speed - fastest*t.TrafficScroll
}

// StepFeature scrolls a road pad with the world
func StepFeature(f *models.Feature, leadDistance, fastest float64) {
	f.Y += fastest
	f.X = road.LaneCenterX(f.Lane, road.DistanceAtScreenY(leadDistance, f.Y))
}

// DecayShake returns the next screen-shake magnitude
func DecayShake(shake float64, t Tuning) float64 {
	if shake <= 0 {
		return 0
	}
	shake *= t.ShakeDecay
	if shake < 0.01 {
		return 0
	}
	return shake
}
