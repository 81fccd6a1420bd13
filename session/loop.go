package session

import "time"

// DefaultMaxCatchUp bounds how many ticks one host frame may run
const DefaultMaxCatchUp = 5

// Loop turns host frame time into whole fixed-size ticks
type Loop struct {
	Step       time.Duration
	MaxCatchUp int

	accumulator time.Duration
}

// NewLoop creates a loop ticking tickRate times per second
func NewLoop(tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		Step:       time.Second / time.Duration(tickRate),
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

// Advance adds frame time and runs tick once per whole step. Backlog beyond the
// catch-up cap is dropped. It returns how many ticks ran.
func (l *Loop) Advance(dt time.Duration, tick func()) int {
	if dt > 0 {
		l.accumulator += dt
	}
	n := 0
	for l.accumulator >= l.Step {
		if n == l.MaxCatchUp {
			l.accumulator = 0
			break
		}
		tick()
		l.accumulator -= l.Step
		n++
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator
func (l *Loop) Alpha() float64 {
	return float64(l.accumulator) / float64(l.Step)
}

// Reset drops any accumulated time
func (l *Loop) Reset() {
	l.accumulator = 0
}
