package audio

import "sync"

// EventKind is a sound intent raised by the simulation
type EventKind int

const (
	EventCollision EventKind = iota
	EventBoost
	EventLanding
	EventPickup
	EventIntensity
	EventVictory
)

func (k EventKind) String() string {
	switch k {
	case EventCollision:
		return "collision"
	case EventBoost:
		return "boost"
	case EventLanding:
		return "landing"
	case EventPickup:
		return "pickup"
	case EventIntensity:
		return "intensity"
	case EventVictory:
		return "victory"
	}
	return "unknown"
}

// Event is one intent. Speed and Boosting are set for EventIntensity.
type Event struct {
	Kind     EventKind
	Player   int
	Speed    float64
	Boosting bool
}

// Sink consumes sound intents. Implementations must not block the caller.
type Sink interface {
	Start()
	Stop()
	Notify(Event)
}

// Nop discards every intent
type Nop struct{}

func (Nop) Start()       {}
func (Nop) Stop()        {}
func (Nop) Notify(Event) {}

// Recorder keeps every intent it receives, for tests and replays
type Recorder struct {
	mu      sync.Mutex
	events  []Event
	running bool
	starts  int
	stops   int
}

func (r *Recorder) Start() {
	r.mu.Lock()
	r.running = true
	r.starts++
	r.mu.Unlock()
}

func (r *Recorder) Stop() {
	r.mu.Lock()
	r.running = false
	r.stops++
	r.mu.Unlock()
}

func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many intents of a kind were recorded
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Running reports whether Start was called more recently than Stop
func (r *Recorder) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Lifecycle returns the number of Start and Stop calls
func (r *Recorder) Lifecycle() (starts, stops int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts, r.stops
}

// TargetBPM maps the fastest car's speed to the beat tempo, 120 to 180 BPM
func TargetBPM(speed float64) float64 {
	if speed < 0 {
		speed = 0
	}
	if speed > 45 {
		speed = 45
	}
	return 120 + speed/45*60
}
