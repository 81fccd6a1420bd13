package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Tick()
		m.Collision("traffic")
		m.Spawned()
		m.Pickup("RAMP")
		m.RaceFinished("CITY", 10, 20)
	})
}

func TestMetricsAgainstGlobalProvider(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.Tick()
		m.Collision("bump")
		m.Spawned()
		m.Pickup("OIL")
		m.RaceFinished("DESERT", 51, 42)
	})
}
