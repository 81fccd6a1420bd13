package feature

import (
	"math/rand"

	"github.com/golangdaddy/turbonitro/collision"
	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/physics"
	"github.com/golangdaddy/turbonitro/road"
)

// Pad geometry and effects
const (
	SpawnY        = -100.0
	TrailingLimit = road.CanvasHeight + 100

	PadWidth  = 60.0
	PadHeight = 30.0
	ContactDX = 40.0
	ContactDY = 50.0

	OilSlow    = 0.7
	OilJolt    = 8.0
	HealAmount = 25.0
)

// Pickup records a pad consumed by a player
type Pickup struct {
	Player    int
	FeatureID int64
	Type      models.FeatureType
}

// Spawner paints a new pad in a random lane at a fixed cadence
type Spawner struct {
	interval int
	rng      *rand.Rand
	nextID   int64
	ticks    int
}

// NewSpawner creates a pad spawner. A non-positive interval disables pads.
func NewSpawner(interval int, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spawner{interval: interval, rng: rng}
}

// Step counts one tick, sweeping and spawning on cadence ticks
func (s *Spawner) Step(pads []models.Feature, leadDistance float64) ([]models.Feature, *models.Feature) {
	if s.interval <= 0 {
		return pads, nil
	}
	s.ticks++
	if s.ticks%s.interval != 0 {
		return pads, nil
	}
	lane := s.rng.Intn(road.Lanes)
	pads = Recycle(pads)
	pads = append(pads, models.Feature{
		ID:   s.nextID,
		X:    road.LaneCenterX(lane, road.DistanceAtScreenY(leadDistance, SpawnY)),
		Y:    SpawnY,
		Lane: lane,
		Type: models.FeatureTypes[s.rng.Intn(len(models.FeatureTypes))],
	})
	s.nextID++
	return pads, &pads[len(pads)-1]
}

// Recycle drops pads that have scrolled past the bottom edge
func Recycle(pads []models.Feature) []models.Feature {
	kept := pads[:0]
	for _, f := range pads {
		if f.Y < TrailingLimit {
			kept = append(kept, f)
		}
	}
	return kept
}

// Collect lets grounded players drive over pads. Each pad is consumed by the first
// player in slot order to touch it.
func Collect(players []models.PlayerCar, pads []models.Feature, t physics.Tuning, rng *rand.Rand) ([]models.Feature, []Pickup) {
	var pickups []Pickup
	kept := pads[:0]
	for _, f := range pads {
		taken := false
		for i := range players {
			p := &players[i]
			if !p.Active() || p.Airborne {
				continue
			}
			if !collision.Overlaps(p.X, p.Y, f.X, f.Y, ContactDX, ContactDY) {
				continue
			}
			Apply(p, f.Type, t, rng)
			pickups = append(pickups, Pickup{Player: i, FeatureID: f.ID, Type: f.Type})
			taken = true
			break
		}
		if !taken {
			kept = append(kept, f)
		}
	}
	return kept, pickups
}

// Apply gives a car the effect of a pad
func Apply(p *models.PlayerCar, ft models.FeatureType, t physics.Tuning, rng *rand.Rand) {
	switch ft {
	case models.FeatureRamp:
		p.Launch(t.JumpForce)
	case models.FeatureTurbo:
		p.Boost = models.MeterMax
	case models.FeatureOil:
		p.Speed *= OilSlow
		if rng != nil && rng.Intn(2) == 0 {
			p.VX -= OilJolt
		} else {
			p.VX += OilJolt
		}
	case models.FeatureHealth:
		p.Heal(HealAmount)
	}
}
