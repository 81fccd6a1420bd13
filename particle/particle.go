package particle

import (
	"image/color"
	"math/rand"

	"github.com/golangdaddy/turbonitro/models"
)

// Defaults for the cosmetic effects
const (
	DefaultMax   = 1024
	DefaultDecay = 0.02

	burstSpeed   = 12.0 // velocity spread, +/- burstSpeed/2
	burstMinSize = 3.0
	burstSizeVar = 3.0

	trailSpread  = 15.0
	trailOffsetY = 35.0
	trailSpeed   = 5.0
	trailLife    = 0.8
	trailMinSize = 2.0
	trailSizeVar = 4.0
)

// System owns every live particle. It never touches gameplay state.
// Once Max particles are alive, a new one replaces the most faded.
type System struct {
	Max   int
	Decay float64
	P     []models.Particle

	rng *rand.Rand
}

// NewSystem creates a particle system holding at most max particles
func NewSystem(max int, rng *rand.Rand) *System {
	s := &System{Max: max, Decay: DefaultDecay, rng: rng}
	if s.Max <= 0 {
		s.Max = DefaultMax
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	s.P = make([]models.Particle, 0, s.Max)
	return s
}

// Clear drops every particle
func (s *System) Clear() {
	s.P = s.P[:0]
}

// Add stores a particle. At the cap it takes the slot of the dimmest one.
func (s *System) Add(p models.Particle) {
	if len(s.P) < s.Max {
		s.P = append(s.P, p)
		return
	}
	s.P[s.dimmest()] = p
}

func (s *System) dimmest() int {
	idx := 0
	for i := 1; i < len(s.P); i++ {
		if s.P[i].Life < s.P[idx].Life {
			idx = i
		}
	}
	return idx
}

// Burst spawns n debris particles at an impact point
func (s *System) Burst(x, y float64, c color.RGBA, n int) {
	for i := 0; i < n; i++ {
		s.Add(models.Particle{
			X:     x,
			Y:     y,
			VX:    (s.rng.Float64() - 0.5) * burstSpeed,
			VY:    (s.rng.Float64() - 0.5) * burstSpeed,
			Life:  1,
			Size:  burstMinSize + s.rng.Float64()*burstSizeVar,
			Color: c,
		})
	}
}

// Trail spawns one exhaust particle behind a boosting car
func (s *System) Trail(x, y, speed float64, c color.RGBA) {
	s.Add(models.Particle{
		X:     x + (s.rng.Float64()-0.5)*trailSpread,
		Y:     y + trailOffsetY,
		VX:    (s.rng.Float64() - 0.5) * trailSpeed,
		VY:    speed * 0.5,
		Life:  trailLife,
		Size:  trailMinSize + s.rng.Float64()*trailSizeVar,
		Color: c,
	})
}

// Step moves and ages every particle, compacting out the dead ones
func (s *System) Step() {
	n := 0
	for i := range s.P {
		p := s.P[i]
		p.X += p.VX
		p.Y += p.VY
		p.Life -= s.Decay
		if !p.Alive() {
			continue
		}
		s.P[n] = p
		n++
	}
	s.P = s.P[:n]
}

// Len returns the number of live particles
func (s *System) Len() int {
	return len(s.P)
}

// Live returns a copy of the live particles for rendering
func (s *System) Live() []models.Particle {
	out := make([]models.Particle, 0, len(s.P))
	for _, p := range s.P {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}
