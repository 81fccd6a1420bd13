package traffic

import (
	"math/rand"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/road"
)

// Spawn geometry in screen space
const (
	SpawnY        = -200.0
	TrailingLimit = road.CanvasHeight + 200 // dropped once past the bottom edge
	LeadingLimit  = -600.0                  // dropped once far above the top edge
)

// Config controls spawn cadence and the speed range of new cars
type Config struct {
	Interval int // Ticks between spawns
	SpeedMin float64
	SpeedMax float64
}

// DefaultConfig spawns one car a second at 60 ticks per second
func DefaultConfig() Config {
	return Config{Interval: 60, SpeedMin: 5, SpeedMax: 12}
}

// Spawner introduces traffic ahead of the lead car and sweeps out cars
// that have scrolled off screen
type Spawner struct {
	cfg    Config
	rng    *rand.Rand
	nextID int64
	ticks  int
}

// NewSpawner creates a spawner drawing from rng
func NewSpawner(cfg Config, rng *rand.Rand) *Spawner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.SpeedMax < cfg.SpeedMin {
		cfg.SpeedMin, cfg.SpeedMax = cfg.SpeedMax, cfg.SpeedMin
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spawner{cfg: cfg, rng: rng}
}

// Step counts one tick. On spawn ticks it drops off-screen cars and appends a new
// one, returning the spawned car.
func (s *Spawner) Step(cars []models.TrafficCar, leadDistance float64) ([]models.TrafficCar, *models.TrafficCar) {
	s.ticks++
	if s.ticks%s.cfg.Interval != 0 {
		return cars, nil
	}
	cars = Recycle(cars)
	cars = append(cars, s.newCar(leadDistance))
	return cars, &cars[len(cars)-1]
}

// Spawned returns how many cars have been created
func (s *Spawner) Spawned() int64 {
	return s.nextID
}

func (s *Spawner) newCar(leadDistance float64) models.TrafficCar {
	lane := s.rng.Intn(road.Lanes)
	speed := s.cfg.SpeedMin + s.rng.Float64()*(s.cfg.SpeedMax-s.cfg.SpeedMin)
	c := models.TrafficPalette[s.rng.Intn(len(models.TrafficPalette))]

	kind := models.CarSedan
	if s.rng.Float64() > 0.8 {
		kind = models.CarTruck
	} else if s.rng.Float64() > 0.6 {
		kind = models.CarSport
	}

	tc := models.TrafficCar{
		ID:    s.nextID,
		X:     road.LaneCenterX(lane, road.DistanceAtScreenY(leadDistance, SpawnY)),
		Y:     SpawnY,
		Speed: speed,
		Lane:  lane,
		Color: c,
		Type:  kind,
	}
	s.nextID++
	return tc
}

// Recycle keeps only cars still within the scroll window
func Recycle(cars []models.TrafficCar) []models.TrafficCar {
	kept := cars[:0]
	for _, tc := range cars {
		if tc.Y < TrailingLimit && tc.Y > LeadingLimit {
			kept = append(kept, tc)
		}
	}
	return kept
}
