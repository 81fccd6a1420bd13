package session

import (
	"math"
	"sort"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/physics"
)

// distanceScale converts distance units to the kilometres shown in results
const distanceScale = 100

// ComputeResults ranks final player snapshots by distance, furthest first.
// Ties keep slot order.
func ComputeResults(players []models.PlayerCar, t physics.Tuning) []models.RaceResult {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return players[order[a]].Distance > players[order[b]].Distance
	})

	results := make([]models.RaceResult, len(players))
	for rank, idx := range order {
		p := players[idx]
		results[rank] = models.RaceResult{
			PlayerName: p.Name,
			Distance:   int(math.Floor(p.Distance / distanceScale)),
			TopSpeed:   t.DisplaySpeed(p.TopSpeed),
			Laps:       p.Lap,
			Rank:       rank + 1,
		}
	}
	return results
}
