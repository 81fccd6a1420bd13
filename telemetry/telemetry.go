package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/golangdaddy/turbonitro/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics records race activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ticks      metric.Int64Counter
	collisions metric.Int64Counter
	spawned    metric.Int64Counter
	pickups    metric.Int64Counter
	races      metric.Int64Counter
	distance   metric.Int64Histogram
}

// New registers the instruments against the global meter provider
func New() (*Metrics, error) {
	m := meter()
	var (
		out Metrics
		err error
	)

	if out.ticks, err = m.Int64Counter(
		"turbonitro.race.ticks",
		metric.WithDescription("Simulation ticks advanced while racing"),
	); err != nil {
		return nil, fmt.Errorf("failed to create ticks counter: %w", err)
	}
	if out.collisions, err = m.Int64Counter(
		"turbonitro.race.collisions",
		metric.WithDescription("Collisions resolved, by kind"),
	); err != nil {
		return nil, fmt.Errorf("failed to create collisions counter: %w", err)
	}
	if out.spawned, err = m.Int64Counter(
		"turbonitro.traffic.spawned",
		metric.WithDescription("Traffic cars introduced"),
	); err != nil {
		return nil, fmt.Errorf("failed to create spawned counter: %w", err)
	}
	if out.pickups, err = m.Int64Counter(
		"turbonitro.feature.pickups",
		metric.WithDescription("Road pads collected, by type"),
	); err != nil {
		return nil, fmt.Errorf("failed to create pickups counter: %w", err)
	}
	if out.races, err = m.Int64Counter(
		"turbonitro.race.finished",
		metric.WithDescription("Races that reached the results screen"),
	); err != nil {
		return nil, fmt.Errorf("failed to create races counter: %w", err)
	}
	if out.distance, err = m.Int64Histogram(
		"turbonitro.race.distance",
		metric.WithDescription("Final distance per player"),
		metric.WithUnit("km"),
	); err != nil {
		return nil, fmt.Errorf("failed to create distance histogram: %w", err)
	}
	return &out, nil
}

// Tick counts one racing tick
func (m *Metrics) Tick() {
	if m == nil {
		return
	}
	m.ticks.Add(context.Background(), 1)
}

// Collision counts one collision of the given kind
func (m *Metrics) Collision(kind string) {
	if m == nil {
		return
	}
	m.collisions.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Spawned counts one traffic car
func (m *Metrics) Spawned() {
	if m == nil {
		return
	}
	m.spawned.Add(context.Background(), 1)
}

// Pickup counts one collected pad
func (m *Metrics) Pickup(feature string) {
	if m == nil {
		return
	}
	m.pickups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("feature", feature)))
}

// RaceFinished counts a race and records each player's final distance
func (m *Metrics) RaceFinished(theme string, distances ...int) {
	if m == nil {
		return
	}
	ctx := context.Background()
	themeAttr := metric.WithAttributes(attribute.String("theme", theme))
	m.races.Add(ctx, 1, themeAttr)
	for _, d := range distances {
		m.distance.Record(ctx, int64(d), themeAttr)
	}
}
