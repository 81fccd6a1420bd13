package input

import "sync"

// Key is a logical key code. Keyboard and touch sources map onto the same codes.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyShiftRight Key = "ShiftRight"
	KeyW          Key = "KeyW"
	KeyS          Key = "KeyS"
	KeyA          Key = "KeyA"
	KeyD          Key = "KeyD"
	KeyShiftLeft  Key = "ShiftLeft"
	KeyEscape     Key = "Escape"
)

// KeySet is the set of currently held keys.
// It is written by input sources and read once per tick by the simulation.
type KeySet struct {
	mu   sync.RWMutex
	keys map[Key]struct{}
}

// NewKeySet creates an empty key set
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[Key]struct{})}
}

// Press marks a key as held
func (ks *KeySet) Press(k Key) {
	ks.mu.Lock()
	ks.keys[k] = struct{}{}
	ks.mu.Unlock()
}

// Release marks a key as no longer held
func (ks *KeySet) Release(k Key) {
	ks.mu.Lock()
	delete(ks.keys, k)
	ks.mu.Unlock()
}

// Set presses or releases a key
func (ks *KeySet) Set(k Key, down bool) {
	if down {
		ks.Press(k)
		return
	}
	ks.Release(k)
}

// Has reports whether a key is held
func (ks *KeySet) Has(k Key) bool {
	ks.mu.RLock()
	_, ok := ks.keys[k]
	ks.mu.RUnlock()
	return ok
}

// Clear releases every key
func (ks *KeySet) Clear() {
	ks.mu.Lock()
	clear(ks.keys)
	ks.mu.Unlock()
}

// Len returns the number of held keys
func (ks *KeySet) Len() int {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return len(ks.keys)
}

// Intent is what a player asks their car to do this tick
type Intent struct {
	Up, Down, Left, Right, Boost bool
}

// ControlScheme binds one player's actions to keys
type ControlScheme struct {
	Up, Down, Left, Right, Boost Key
}

// Primary is the arrow-key scheme used by player one
func Primary() ControlScheme {
	return ControlScheme{Up: KeyArrowUp, Down: KeyArrowDown, Left: KeyArrowLeft, Right: KeyArrowRight, Boost: KeyShiftRight}
}

// Secondary is the WASD scheme used by player two
func Secondary() ControlScheme {
	return ControlScheme{Up: KeyW, Down: KeyS, Left: KeyA, Right: KeyD, Boost: KeyShiftLeft}
}

// SchemeFor returns the scheme assigned to a player slot
func SchemeFor(slot int) ControlScheme {
	if slot == 0 {
		return Primary()
	}
	return Secondary()
}

// Read samples the scheme's keys from the set
func (cs ControlScheme) Read(ks *KeySet) Intent {
	if ks == nil {
		return Intent{}
	}
	return Intent{
		Up:    ks.Has(cs.Up),
		Down:  ks.Has(cs.Down),
		Left:  ks.Has(cs.Left),
		Right: ks.Has(cs.Right),
		Boost: ks.Has(cs.Boost),
	}
}
