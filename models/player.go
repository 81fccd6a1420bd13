package models

import (
	"image/color"

	"github.com/golangdaddy/turbonitro/input"
)

// Player car body dimensions in pixels
const (
	PlayerWidth  = 40.0
	PlayerHeight = 75.0
)

// Meter bounds shared by health and boost
const (
	MeterMin = 0.0
	MeterMax = 100.0
)

// PlayerCar is one human participant's car
type PlayerCar struct {
	X, Y, Z  float64 // Lateral screen position, fixed screen depth, altitude
	VX, VZ   float64 // Lateral and vertical velocity
	Speed    float64 // Forward speed in distance units per tick
	TopSpeed float64 // Highest forward speed reached this race
	Distance float64 // Cumulative distance travelled
	Lap      int     // floor(Distance / LapDistance) + 1

	Health   float64 // [0,100]
	Boost    float64 // [0,100]
	Boosting bool
	Airborne bool

	Lane     int
	Name     string
	Color    color.RGBA
	Controls input.ControlScheme
}

// Active reports whether the car still takes part in the simulation
func (p *PlayerCar) Active() bool {
	return p.Health > 0
}

// Damage removes health, never dropping below zero
func (p *PlayerCar) Damage(amount float64) {
	p.Health = Clamp(p.Health-amount, MeterMin, MeterMax)
}

// Heal restores health, never exceeding the meter maximum
func (p *PlayerCar) Heal(amount float64) {
	p.Health = Clamp(p.Health+amount, MeterMin, MeterMax)
}

// AddBoost charges (or drains, for negative amounts) the boost meter
func (p *PlayerCar) AddBoost(amount float64) {
	p.Boost = Clamp(p.Boost+amount, MeterMin, MeterMax)
}

// BoostReady reports whether the meter is full enough to engage boost
func (p *PlayerCar) BoostReady() bool {
	return p.Boost >= MeterMax
}

// Launch puts a grounded car into the air with the given vertical velocity
func (p *PlayerCar) Launch(vz float64) bool {
	if p.Airborne {
		return false
	}
	p.Airborne = true
	p.VZ = vz
	return true
}
