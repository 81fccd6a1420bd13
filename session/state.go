package session

import "errors"

// State is a session controller state
type State int

const (
	StateMenu State = iota
	StateRacing
	StatePaused
	StateResults
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateRacing:
		return "racing"
	case StatePaused:
		return "paused"
	case StateResults:
		return "results"
	}
	return "unknown"
}

// ErrInvalidTransition is returned when an operation is not allowed in the current state
var ErrInvalidTransition = errors.New("invalid session transition")
