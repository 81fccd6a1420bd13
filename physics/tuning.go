package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is wrapped by every tuning validation failure
var ErrInvalidTuning = errors.New("invalid physics tuning")

// Tuning holds every physics constant. Field names double as config keys under "physics".
type Tuning struct {
	Acceleration      float64 `mapstructure:"acceleration"`
	Brake             float64 `mapstructure:"brake"`
	Friction          float64 `mapstructure:"friction"`
	MaxSpeed          float64 `mapstructure:"maxSpeed"`
	BoostMaxSpeed     float64 `mapstructure:"boostMaxSpeed"`
	BoostAcceleration float64 `mapstructure:"boostAcceleration"`
	BoostChargeRate   float64 `mapstructure:"boostChargeRate"`
	BoostConsumeRate  float64 `mapstructure:"boostConsumeRate"`

	Gravity   float64 `mapstructure:"gravity"`
	JumpForce float64 `mapstructure:"jumpForce"`

	SteerForce      float64 `mapstructure:"steerForce"`
	LateralFriction float64 `mapstructure:"lateralFriction"`
	CurvatureGain   float64 `mapstructure:"curvatureGain"`
	Lookahead       float64 `mapstructure:"lookahead"`

	OffroadPenalty   float64 `mapstructure:"offroadPenalty"`
	OffroadDamage    float64 `mapstructure:"offroadDamage"`
	OffroadMinSpeed  float64 `mapstructure:"offroadMinSpeed"`
	OffroadOverrun   float64 `mapstructure:"offroadOverrun"`
	TrafficSpeedMin  float64 `mapstructure:"trafficSpeedMin"`
	TrafficSpeedMax  float64 `mapstructure:"trafficSpeedMax"`
	TrafficScroll    float64 `mapstructure:"trafficScroll"`
	LandingShake     float64 `mapstructure:"landingShake"`
	ShakeDecay       float64 `mapstructure:"shakeDecay"`
	DisplaySpeedGain float64 `mapstructure:"displaySpeedGain"`
}

// Default returns the stock arcade handling
func Default() Tuning {
	return Tuning{
		Acceleration:      0.2,
		Brake:             0.5,
		Friction:          0.99,
		MaxSpeed:          25,
		BoostMaxSpeed:     45,
		BoostAcceleration: 0.6,
		BoostChargeRate:   0.3,
		BoostConsumeRate:  0.8,

		Gravity:   0.5,
		JumpForce: 12,

		SteerForce:      1.2,
		LateralFriction: 0.85,
		CurvatureGain:   0.15,
		Lookahead:       20,

		OffroadPenalty:   0.98,
		OffroadDamage:    0.05,
		OffroadMinSpeed:  5,
		OffroadOverrun:   60,
		TrafficSpeedMin:  5,
		TrafficSpeedMax:  12,
		TrafficScroll:    0.5,
		LandingShake:     10,
		ShakeDecay:       0.9,
		DisplaySpeedGain: 12,
	}
}

// SpeedCap returns the forward speed limit for the current boost state
func (t Tuning) SpeedCap(boosting bool) float64 {
	if boosting {
		return t.BoostMaxSpeed
	}
	return t.MaxSpeed
}

// DisplaySpeed converts a forward speed to the KM/H shown on the HUD
func (t Tuning) DisplaySpeed(speed float64) int {
	return int(speed * t.DisplaySpeedGain)
}

// Validate rejects tunings that break the speed and meter dynamics: rates and
// speeds must be positive and per-tick decay factors must lie in (0,1).
func (t Tuning) Validate() error {
	positive := []struct {
		key string
		v   float64
	}{
		{"acceleration", t.Acceleration},
		{"brake", t.Brake},
		{"maxSpeed", t.MaxSpeed},
		{"boostMaxSpeed", t.BoostMaxSpeed},
		{"boostAcceleration", t.BoostAcceleration},
		{"boostChargeRate", t.BoostChargeRate},
		{"boostConsumeRate", t.BoostConsumeRate},
		{"gravity", t.Gravity},
		{"jumpForce", t.JumpForce},
		{"steerForce", t.SteerForce},
		{"trafficSpeedMin", t.TrafficSpeedMin},
		{"displaySpeedGain", t.DisplaySpeedGain},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidTuning, f.key, f.v)
		}
	}

	decay := []struct {
		key string
		v   float64
	}{
		{"friction", t.Friction},
		{"lateralFriction", t.LateralFriction},
		{"offroadPenalty", t.OffroadPenalty},
		{"shakeDecay", t.ShakeDecay},
	}
	for _, f := range decay {
		if f.v <= 0 || f.v >= 1 {
			return fmt.Errorf("%w: %s must be within (0,1), got %g", ErrInvalidTuning, f.key, f.v)
		}
	}

	nonNegative := []struct {
		key string
		v   float64
	}{
		{"curvatureGain", t.CurvatureGain},
		{"lookahead", t.Lookahead},
		{"offroadDamage", t.OffroadDamage},
		{"offroadMinSpeed", t.OffroadMinSpeed},
		{"offroadOverrun", t.OffroadOverrun},
		{"trafficScroll", t.TrafficScroll},
		{"landingShake", t.LandingShake},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidTuning, f.key, f.v)
		}
	}

	switch {
	case t.BoostMaxSpeed < t.MaxSpeed:
		return fmt.Errorf("%w: boostMaxSpeed %g is below maxSpeed %g", ErrInvalidTuning, t.BoostMaxSpeed, t.MaxSpeed)
	case t.TrafficSpeedMax < t.TrafficSpeedMin:
		return fmt.Errorf("%w: trafficSpeedMax %g is below trafficSpeedMin %g", ErrInvalidTuning, t.TrafficSpeedMax, t.TrafficSpeedMin)
	}
	return nil
}
