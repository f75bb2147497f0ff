// Package counter holds the state and transition rules of a bounded counter.
//
// The counter lives in [0, MaxCount]. Transitions never fail: decrementing at
// zero and resetting at zero are no-ops, and incrementing at the ceiling is
// refused with a false result so that callers can tell the user.
package counter

// DefaultMaxCount is the ceiling used when none is configured.
const DefaultMaxCount = 10

// State is an immutable snapshot of the counter. The flags are derived from
// the two stored values and are never stored themselves.
type State struct {
	Counter  int `json:"counter"`
	MaxCount int `json:"max_count"`
}

// CanDecrement reports whether Decrement would change the counter.
func (s State) CanDecrement() bool {
	return s.Counter > 0
}

// CanReset reports whether Reset would change the counter.
func (s State) CanReset() bool {
	return s.Counter != 0
}

// IsMaxReached reports whether the counter is at the ceiling.
func (s State) IsMaxReached() bool {
	return s.Counter >= s.MaxCount
}

// Increment returns the next state and true, or the unchanged state and
// false when the ceiling is reached.
func (s State) Increment() (State, bool) {
	if s.IsMaxReached() {
		return s, false
	}

	return State{Counter: s.Counter + 1, MaxCount: s.MaxCount}, true
}

// Decrement returns the state one lower, or s itself at zero.
func (s State) Decrement() State {
	if !s.CanDecrement() {
		return s
	}

	return State{Counter: s.Counter - 1, MaxCount: s.MaxCount}
}

func (s State) Reset() State {
	return State{Counter: 0, MaxCount: s.MaxCount}
}

func (s State) valid() bool {
	return s.MaxCount >= 0 && s.Counter >= 0 && s.Counter <= s.MaxCount
}
