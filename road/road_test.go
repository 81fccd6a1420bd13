package road

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset_Deterministic(t *testing.T) {
	for _, d := range []float64{0, 12.5, 4999, 5000, 123456.789} {
		assert.Equal(t, Offset(d), Offset(d))
	}
	assert.InDelta(t, 100.0, Offset(0), 1e-9)
}

func TestOffset_Continuous(t *testing.T) {
	// Derivative is bounded by the sum of amplitude*frequency terms.
	const bound = 300*0.0005 + 150*0.0012 + 100*0.0003
	const eps = 0.5
	for d := -20000.0; d < 200000; d += 37.3 {
		diff := math.Abs(Offset(d+eps) - Offset(d))
		assert.LessOrEqual(t, diff, bound*eps+1e-9, "distance %v", d)
	}
}

func TestBand(t *testing.T) {
	left, right := Band(0)
	assert.InDelta(t, 400.0, left, 1e-9)
	assert.InDelta(t, HighwayWidth, right-left, 1e-9)
	assert.True(t, InBand(left+1, 0))
	assert.False(t, InBand(left-1, 0))
	assert.False(t, InBand(right+1, 0))
}

func TestLaneCenterX(t *testing.T) {
	left := HighwayLeft(2500)
	tests := []struct {
		lane int
		want float64
	}{
		{0, left + 75},
		{1, left + 225},
		{3, left + 525},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LaneCenterX(tt.lane, 2500), 1e-9)
	}
}

func TestCurvaturePull(t *testing.T) {
	d := 1000.0
	want := (Offset(d+20) - Offset(d)) * 0.15
	assert.InDelta(t, want, CurvaturePull(d, 20, 0.15), 1e-12)
	assert.Zero(t, CurvaturePull(d, 0, 0.15))
}

func TestLapAt(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 1},
		{4999.9, 1},
		{5000, 2},
		{12500, 3},
		{-10, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LapAt(tt.distance), "distance %v", tt.distance)
	}
}

func TestDistanceAtScreenY(t *testing.T) {
	assert.Equal(t, 1000.0, DistanceAtScreenY(1000, CanvasHeight))
	assert.Equal(t, 1800.0, DistanceAtScreenY(1000, 0))
}

func TestIsLapBoundary(t *testing.T) {
	assert.True(t, IsLapBoundary(5000))
	assert.True(t, IsLapBoundary(10049))
	assert.False(t, IsLapBoundary(10050))
}
