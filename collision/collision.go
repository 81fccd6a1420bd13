package collision

import (
	"math"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/particle"
)

// Rules sets the hit boxes and consequences of each interaction class
type Rules struct {
	TrafficDX      float64 `mapstructure:"trafficDX"`
	TrafficDY      float64 `mapstructure:"trafficDY"`
	TrafficDamage  float64 `mapstructure:"trafficDamage"`
	TrafficSlow    float64 `mapstructure:"trafficSlow"`
	TrafficImpulse float64 `mapstructure:"trafficImpulse"`
	TrafficShake   float64 `mapstructure:"trafficShake"`
	TrafficDebris  int     `mapstructure:"trafficDebris"`

	BumpDX   float64 `mapstructure:"bumpDX"`
	BumpDY   float64 `mapstructure:"bumpDY"`
	BumpPush float64 `mapstructure:"bumpPush"`
	BumpSlow float64 `mapstructure:"bumpSlow"`
}

// DefaultRules returns the stock collision tuning
func DefaultRules() Rules {
	return Rules{
		TrafficDX:      38,
		TrafficDY:      75,
		TrafficDamage:  15,
		TrafficSlow:    0.4,
		TrafficImpulse: 15,
		TrafficShake:   20,
		TrafficDebris:  6,

		BumpDX:   40,
		BumpDY:   80,
		BumpPush: 5,
		BumpSlow: 0.99,
	}
}

// Kind classifies a collision event
type Kind int

const (
	TrafficHit Kind = iota
	PlayerBump
)

func (k Kind) String() string {
	if k == PlayerBump {
		return "player_bump"
	}
	return "traffic_hit"
}

// Event is one resolved interaction
type Event struct {
	Kind      Kind
	Player    int   // Player slot
	Other     int   // Other player slot for PlayerBump
	TrafficID int64 // Traffic car for TrafficHit
}

// Result is the outcome of one resolver pass
type Result struct {
	Events  []Event
	Removed map[int64]struct{} // Traffic ids to drop this tick
	Shake   float64            // Screen-shake pulse, 0 when nothing hit
}

// Overlaps is the axis-aligned proximity test used by every interaction
func Overlaps(ax, ay, bx, by, dx, dy float64) bool {
	return math.Abs(ax-bx) < dx && math.Abs(ay-by) < dy
}

// Resolve applies player-traffic and player-player interactions for one tick.
// Players are evaluated in slot order, traffic in spawn order. A traffic car hit by
// several players damages each of them but is removed once.
func Resolve(players []models.PlayerCar, traffic []models.TrafficCar, ps *particle.System, r Rules) Result {
	res := Result{Removed: make(map[int64]struct{})}

	for i := range players {
		p := &players[i]
		if !p.Active() || p.Airborne {
			continue
		}
		hits := 0
		for j := range traffic {
			t := &traffic[j]
			if !Overlaps(p.X, p.Y, t.X, t.Y, r.TrafficDX, r.TrafficDY) {
				continue
			}
			impulse := -r.TrafficImpulse
			if p.X > t.X {
				impulse = r.TrafficImpulse
			}
			if hits == 0 {
				p.VX = impulse
			} else {
				p.VX += impulse
			}
			hits++

			p.Damage(r.TrafficDamage)
			p.Speed *= r.TrafficSlow
			res.Shake = r.TrafficShake
			res.Removed[t.ID] = struct{}{}
			res.Events = append(res.Events, Event{Kind: TrafficHit, Player: i, TrafficID: t.ID})
			if ps != nil {
				ps.Burst(p.X, p.Y, t.Color, r.TrafficDebris)
			}
		}
	}

	// Bumps read a snapshot so both cars see the same positions
	snap := make([]models.PlayerCar, len(players))
	copy(snap, players)
	for i := range players {
		p := &players[i]
		if !p.Active() || p.Airborne {
			continue
		}
		for j := range snap {
			o := &snap[j]
			if i == j || !o.Active() || o.Airborne {
				continue
			}
			if !Overlaps(snap[i].X, snap[i].Y, o.X, o.Y, r.BumpDX, r.BumpDY) {
				continue
			}
			if snap[i].X > o.X {
				p.VX += r.BumpPush
			} else {
				p.VX -= r.BumpPush
			}
			p.Speed *= r.BumpSlow
			res.Events = append(res.Events, Event{Kind: PlayerBump, Player: i, Other: j})
		}
	}

	return res
}

// Sweep drops traffic cars removed by a resolver pass
func Sweep(traffic []models.TrafficCar, removed map[int64]struct{}) []models.TrafficCar {
	if len(removed) == 0 {
		return traffic
	}
	kept := traffic[:0]
	for _, t := range traffic {
		if _, gone := removed[t.ID]; !gone {
			kept = append(kept, t)
		}
	}
	return kept
}
