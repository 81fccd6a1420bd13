package traffic

import (
	"math/rand"
	"testing"

	"github.com/golangdaddy/turbonitro/models"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawner_Cadence(t *testing.T) {
	s := NewSpawner(DefaultConfig(), rand.New(rand.NewSource(3)))
	var cars []models.TrafficCar

	spawns := 0
	for i := 1; i <= 600; i++ {
		var spawned *models.TrafficCar
		cars, spawned = s.Step(cars, 0)
		if spawned != nil {
			spawns++
			assert.Zero(t, i%60, "spawned on tick %d", i)
		}
	}
	assert.Equal(t, 10, spawns)
	assert.Len(t, cars, 10)
	assert.Equal(t, int64(10), s.Spawned())
}

func TestSpawner_NewCar(t *testing.T) {
	cfg := Config{Interval: 1, SpeedMin: 5, SpeedMax: 12}
	s := NewSpawner(cfg, rand.New(rand.NewSource(11)))
	var cars []models.TrafficCar

	types := map[models.CarType]int{}
	for i := 0; i < 2000; i++ {
		var tc *models.TrafficCar
		cars, tc = s.Step(cars, 1234)
		require.NotNil(t, tc)

		assert.Equal(t, int64(i), tc.ID, "ids are monotonic")
		assert.GreaterOrEqual(t, tc.Lane, 0)
		assert.Less(t, tc.Lane, road.Lanes)
		assert.GreaterOrEqual(t, tc.Speed, 5.0)
		assert.LessOrEqual(t, tc.Speed, 12.0)
		assert.Equal(t, SpawnY, tc.Y)
		assert.Contains(t, models.TrafficPalette, tc.Color)
		assert.InDelta(t, road.LaneCenterX(tc.Lane, 1234+road.CanvasHeight-SpawnY), tc.X, 1e-9)
		types[tc.Type]++
	}
	// Sedans are the common style: ~48% vs ~32% sport and ~20% truck.
	assert.Greater(t, types[models.CarSedan], types[models.CarSport])
	assert.Greater(t, types[models.CarSport], types[models.CarTruck])
	assert.Greater(t, types[models.CarTruck], 0)
}

func TestSpawner_LazySweep(t *testing.T) {
	s := NewSpawner(Config{Interval: 2, SpeedMin: 5, SpeedMax: 5}, nil)
	cars := []models.TrafficCar{
		{ID: 100, Y: road.CanvasHeight + 250},
		{ID: 101, Y: 300},
		{ID: 102, Y: -700},
	}

	cars, tc := s.Step(cars, 0)
	assert.Nil(t, tc)
	assert.Len(t, cars, 3, "off-screen cars linger until a spawn tick")

	cars, tc = s.Step(cars, 0)
	require.NotNil(t, tc)
	require.Len(t, cars, 2)
	assert.Equal(t, int64(101), cars[0].ID)
	assert.Equal(t, int64(0), cars[1].ID)
}

func TestRecycle(t *testing.T) {
	cars := []models.TrafficCar{{ID: 1, Y: 999.9}, {ID: 2, Y: 1000}, {ID: 3, Y: -599}}
	kept := Recycle(cars)
	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].ID)
	assert.Equal(t, int64(3), kept[1].ID)
}
