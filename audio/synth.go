package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// Config holds the audio settings
type Config struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume"`
	SampleRate int     `mapstructure:"sampleRate"`
}

// DefaultConfig returns audio on at half volume
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5, SampleRate: 44100}
}

// Synth renders intents as procedural sound through the system speaker
type Synth struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	beat   *sequencer
	music  *beep.Ctrl
	logger zerolog.Logger
}

// NewSynth opens the speaker and starts an empty mixer
func NewSynth(cfg Config, logger zerolog.Logger) (*Synth, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &Synth{
		sr:     sr,
		mixer:  &beep.Mixer{},
		logger: logger.With().Str("component", "audio").Logger(),
	}
	speaker.Play(newVolume(s.mixer, cfg.Volume))
	s.logger.Debug().Int("sampleRate", cfg.SampleRate).Float64("volume", cfg.Volume).Msg("Speaker initialised")
	return s, nil
}

// Start begins the beat from the top of the bar
func (s *Synth) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Lock()
	defer speaker.Unlock()
	if s.music == nil {
		s.beat = newSequencer(s.sr)
		s.music = &beep.Ctrl{Streamer: s.beat}
		s.mixer.Add(s.music)
		return
	}
	s.beat.reset()
	s.music.Paused = false
}

// Stop silences the beat. One-shot effects already playing finish on their own.
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = true
	speaker.Unlock()
}

// Notify plays the sound for an intent
func (s *Synth) Notify(e Event) {
	switch e.Kind {
	case EventIntensity:
		s.mu.Lock()
		beat := s.beat
		s.mu.Unlock()
		if beat != nil {
			beat.setBPM(TargetBPM(e.Speed))
		}
	case EventCollision:
		s.play(collisionSound(s.sr))
	case EventBoost:
		s.play(boostSound(s.sr))
	case EventLanding:
		s.play(landingSound(s.sr))
	case EventPickup:
		s.play(pickupSound(s.sr))
	case EventVictory:
		s.play(victorySound(s.sr))
	}
}

// Close drops every streamer from the mixer
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.music = nil
	s.beat = nil
	return nil
}

func (s *Synth) play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// newVolume maps a linear gain onto beep's logarithmic volume control
func newVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol), Silent: false}
}
