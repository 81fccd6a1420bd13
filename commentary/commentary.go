package commentary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/golangdaddy/turbonitro/models"
)

// Canned lines used when no narrator produces text
const (
	EmptyFallback = "That was pure chaos on the highway! Someone call the paramedics because these drivers just broke the sound barrier!"
	ErrorFallback = "The sirens are fading, but the legend of this chase will live on. Incredible driving out there!"
)

// ErrNoAPIKey is returned when a remote narrator is configured without credentials
var ErrNoAPIKey = errors.New("commentary: no API key")

// Narrator turns a finished race into a short wrap-up
type Narrator interface {
	Narrate(ctx context.Context, results []models.RaceResult) (string, error)
}

// Local narrates from the numbers alone and never fails
type Local struct{}

// Narrate implements Narrator
func (Local) Narrate(_ context.Context, results []models.RaceResult) (string, error) {
	return Summary(results), nil
}

// Summary builds the deterministic wrap-up shown when the remote narrator is
// unavailable or slow.
func Summary(results []models.RaceResult) string {
	if len(results) == 0 {
		return ErrorFallback
	}
	ranked := byDistance(results)
	winner := ranked[0]

	if len(ranked) == 1 {
		return fmt.Sprintf("%s burned through %d KM of asphalt and topped out at %d KM/H before the wreck. The highway always wins in the end.",
			winner.PlayerName, winner.Distance, winner.TopSpeed)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s dominated the asphalt with %d KM at up to %d KM/H.", winner.PlayerName, winner.Distance, winner.TopSpeed)
	for i, r := range ranked[1:] {
		fmt.Fprintf(&b, " %s crossed the line in P%d after %d KM.", r.PlayerName, i+2, r.Distance)
	}
	return b.String()
}

// Prompt is the request sent to a remote narrator
func Prompt(results []models.RaceResult) string {
	var b strings.Builder
	b.WriteString("You are a high-octane radio DJ for a highway racing station.\n")
	b.WriteString("The chase has just ended. Here are the stats:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: Covered %dKM at speeds of %dKM/H\n", r.PlayerName, r.Distance, r.TopSpeed)
	}
	b.WriteString("\nWrite a short, cinematic 2-3 sentence wrap-up.")
	if len(results) > 0 {
		fmt.Fprintf(&b, " Mention how %s dominated the asphalt.", byDistance(results)[0].PlayerName)
	}
	b.WriteString(" Make it sound like a scene from an action movie.")
	return b.String()
}

func byDistance(results []models.RaceResult) []models.RaceResult {
	ranked := append([]models.RaceResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance > ranked[j].Distance
	})
	return ranked
}
