package models

import "image/color"

// Particle is a short-lived cosmetic effect
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Remaining life in [0,1], drawn as alpha
	Size   float64
	Color  color.RGBA
}

// Alive reports whether the particle should still be drawn
func (p *Particle) Alive() bool {
	return p.Life > 0
}
