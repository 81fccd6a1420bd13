package audio

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// silenceFloor is the level exponential envelopes ramp down to
const silenceFloor = 0.001

// voice is a single enveloped oscillator with an optional exponential pitch sweep
type voice struct {
	sr       beep.SampleRate
	wave     int
	f0, f1   float64 // start and end frequency
	sweep    int     // samples over which f0 slides to f1
	gain     float64
	length   int  // total samples
	expDecay bool // exponential instead of linear fade
	lowpass  float64

	pos   int
	phase float64
	lp    float64
	rng   *rand.Rand
}

func newVoice(sr beep.SampleRate, wave int, f0, f1 float64, sweep, length time.Duration, gain float64, expDecay bool) *voice {
	return &voice{
		sr:       sr,
		wave:     wave,
		f0:       f0,
		f1:       f1,
		sweep:    sr.N(sweep),
		gain:     gain,
		length:   sr.N(length),
		expDecay: expDecay,
		rng:      rand.New(rand.NewSource(int64(f0*1000) + int64(length))),
	}
}

func (v *voice) done() bool {
	return v.pos >= v.length
}

func (v *voice) next() float64 {
	if v.done() {
		return 0
	}
	t := float64(v.pos) / float64(v.length)

	freq := v.f1
	if v.sweep > 0 && v.pos < v.sweep && v.f0 > 0 && v.f1 > 0 {
		freq = v.f0 * math.Pow(v.f1/v.f0, float64(v.pos)/float64(v.sweep))
	}

	var x float64
	switch v.wave {
	case waveSine:
		x = math.Sin(2 * math.Pi * v.phase)
	case waveSquare:
		x = 1
		if v.phase >= 0.5 {
			x = -1
		}
	case waveSaw:
		x = 2 * (v.phase - 0.5)
	case waveNoise:
		x = v.rng.Float64()*2 - 1
	}
	v.phase += freq / float64(v.sr)
	v.phase -= math.Floor(v.phase)

	if v.lowpass > 0 {
		v.lp += v.lowpass * (x - v.lp)
		x = v.lp
	}

	env := 1 - t
	if v.expDecay {
		env = math.Pow(silenceFloor, t)
	}
	v.pos++
	return x * v.gain * env
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.done() {
			return i, i > 0
		}
		s := v.next()
		samples[i][0] = s
		samples[i][1] = s
	}
	return len(samples), true
}

func (v *voice) Err() error {
	return nil
}

// lowpassCoeff returns the one-pole smoothing factor for a cutoff frequency
func lowpassCoeff(cutoff float64, sr beep.SampleRate) float64 {
	return 1 - math.Exp(-2*math.Pi*cutoff/float64(sr))
}

// collisionSound is a square wave diving from 100 Hz to 1 Hz over 200ms
func collisionSound(sr beep.SampleRate) beep.Streamer {
	return newVoice(sr, waveSquare, 100, 1, 200*time.Millisecond, 200*time.Millisecond, 0.2, false)
}

// boostSound is a short burst of filtered noise
func boostSound(sr beep.SampleRate) beep.Streamer {
	v := newVoice(sr, waveNoise, 0, 0, 0, 400*time.Millisecond, 0.15, false)
	v.lowpass = lowpassCoeff(2000, sr)
	return v
}

// landingSound is a low thump
func landingSound(sr beep.SampleRate) beep.Streamer {
	return newVoice(sr, waveSine, 120, 40, 150*time.Millisecond, 250*time.Millisecond, 0.3, true)
}

// pickupSound is a two-note chime
func pickupSound(sr beep.SampleRate) beep.Streamer {
	n1 := newVoice(sr, waveSquare, 987.77, 987.77, 0, 80*time.Millisecond, 0.06, false)
	n2 := newVoice(sr, waveSquare, 1318.51, 1318.51, 0, 200*time.Millisecond, 0.06, false)
	return beep.Seq(n1, n2)
}

// victoryNotes is an A major arpeggio
var victoryNotes = []float64{440, 554.37, 659.25, 880}

// victorySound staggers the arpeggio notes 100ms apart, each ringing for 400ms
func victorySound(sr beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(victoryNotes))
	for i, f := range victoryNotes {
		note := newVoice(sr, waveSine, f, f, 0, 400*time.Millisecond, 0.1, false)
		parts = append(parts, beep.Seq(beep.Silence(sr.N(time.Duration(i)*100*time.Millisecond)), note))
	}
	return beep.Mix(parts...)
}

// Phonk pattern, one bar of sixteenth notes
var (
	cowbellSteps = map[int]bool{0: true, 3: true, 6: true, 8: true, 11: true, 14: true}
	kickSteps    = map[int]bool{0: true, 4: true, 8: true, 12: true}
)

const (
	stepsPerBar = 16
	minBPM      = 120.0
)

// stepSamples returns the length of one sixteenth note at bpm
func stepSamples(bpm float64, sr beep.SampleRate) int {
	if bpm <= 0 {
		bpm = minBPM
	}
	return int(60 / bpm / 4 * float64(sr))
}

// sequencer is an endless drum-and-bass loop whose tempo can change while playing
type sequencer struct {
	sr        beep.SampleRate
	bpm       atomic.Uint64 // math.Float64bits
	step      int
	untilNext int
	voices    []*voice
	rng       *rand.Rand
}

func newSequencer(sr beep.SampleRate) *sequencer {
	s := &sequencer{sr: sr, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	s.setBPM(minBPM)
	return s
}

func (s *sequencer) setBPM(bpm float64) {
	s.bpm.Store(math.Float64bits(bpm))
}

func (s *sequencer) tempo() float64 {
	return math.Float64frombits(s.bpm.Load())
}

func (s *sequencer) reset() {
	s.step = 0
	s.untilNext = 0
	s.voices = s.voices[:0]
	s.setBPM(minBPM)
}

func (s *sequencer) trigger(step int) {
	if cowbellSteps[step] {
		f := 800 + s.rng.Float64()*20
		s.voices = append(s.voices, newVoice(s.sr, waveSquare, f, f, 0, 100*time.Millisecond, 0.04, true))
	}
	if kickSteps[step] {
		s.voices = append(s.voices, newVoice(s.sr, waveSine, 150, 40, 100*time.Millisecond, 200*time.Millisecond, 0.3, true))
	}
	if step%2 == 0 {
		f := 55.0
		if step >= 8 {
			f = 48.99
		}
		bass := newVoice(s.sr, waveSaw, f, f, 0, 200*time.Millisecond, 0.08, true)
		bass.lowpass = lowpassCoeff(200, s.sr)
		s.voices = append(s.voices, bass)
	}
}

func (s *sequencer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.untilNext <= 0 {
			s.trigger(s.step)
			s.step = (s.step + 1) % stepsPerBar
			s.untilNext = stepSamples(s.tempo(), s.sr)
		}
		s.untilNext--

		mix := 0.0
		live := s.voices[:0]
		for _, v := range s.voices {
			mix += v.next()
			if !v.done() {
				live = append(live, v)
			}
		}
		s.voices = live

		samples[i][0] = mix
		samples[i][1] = mix
	}
	return len(samples), true
}

func (s *sequencer) Err() error {
	return nil
}
