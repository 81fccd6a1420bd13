package audio

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

// drain streams s to completion and returns the total sample count and peak level
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			assert.Equal(t, buf[i][0], buf[i][1], "mono")
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestTargetBPM(t *testing.T) {
	assert.Equal(t, 120.0, TargetBPM(0))
	assert.Equal(t, 150.0, TargetBPM(22.5))
	assert.Equal(t, 180.0, TargetBPM(45))
	assert.Equal(t, 180.0, TargetBPM(90))
	assert.Equal(t, 120.0, TargetBPM(-3))
}

func TestOneShotSounds_Terminate(t *testing.T) {
	tests := []struct {
		name    string
		s       beep.Streamer
		length  time.Duration
		maxGain float64
		exact   bool
	}{
		{"collision", collisionSound(testRate), 200 * time.Millisecond, 0.2, true},
		{"boost", boostSound(testRate), 400 * time.Millisecond, 0.15, true},
		{"landing", landingSound(testRate), 250 * time.Millisecond, 0.3, true},
		{"pickup", pickupSound(testRate), 280 * time.Millisecond, 0.06, true},
		{"victory", victorySound(testRate), 700 * time.Millisecond, 0.4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(t, tt.s, testRate.N(5*time.Second))
			if tt.exact {
				assert.Equal(t, testRate.N(tt.length), n)
			} else {
				assert.GreaterOrEqual(t, n, testRate.N(tt.length))
			}
			assert.Greater(t, peak, 0.0)
			assert.LessOrEqual(t, peak, tt.maxGain+1e-9)
		})
	}
}

func TestStepSamples(t *testing.T) {
	assert.Equal(t, 1000, stepSamples(120, testRate))
	assert.Equal(t, 666, stepSamples(180, testRate))
	assert.Equal(t, 1000, stepSamples(0, testRate))
}

func TestSequencer_Pattern(t *testing.T) {
	s := newSequencer(testRate)

	s.trigger(0)
	assert.Len(t, s.voices, 3, "cowbell, kick and bass on the downbeat")

	s.voices = nil
	s.trigger(1)
	assert.Empty(t, s.voices)

	s.trigger(3)
	assert.Len(t, s.voices, 1, "cowbell only")

	s.voices = nil
	s.trigger(10)
	require.Len(t, s.voices, 1, "bass only")
	assert.Equal(t, 48.99, s.voices[0].f0)
}

func TestSequencer_NeverEnds(t *testing.T) {
	s := newSequencer(testRate)
	s.setBPM(TargetBPM(45))
	buf := make([][2]float64, 512)
	for i := 0; i < 100; i++ {
		n, ok := s.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
	assert.Equal(t, 180.0, s.tempo())

	s.reset()
	assert.Equal(t, 0, s.step)
	assert.Equal(t, minBPM, s.tempo())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var sink Sink = &r

	sink.Start()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Notify(Event{Kind: EventCollision})
		}()
	}
	wg.Wait()
	sink.Notify(Event{Kind: EventIntensity, Speed: 10})
	sink.Stop()

	assert.Equal(t, 4, r.Count(EventCollision))
	assert.Len(t, r.Events(), 5)
	assert.False(t, r.Running())
	starts, stops := r.Lifecycle()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, stops)
}

func TestNop(t *testing.T) {
	var sink Sink = Nop{}
	sink.Start()
	sink.Notify(Event{Kind: EventVictory})
	sink.Stop()
}
