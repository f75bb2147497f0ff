package counter

import (
	"sync"

	"github.com/pkg/errors"
)

type Operation string

const (
	OperationIncrement Operation = "increment"
	OperationDecrement Operation = "decrement"
	OperationReset     Operation = "reset"
)

func (o Operation) String() string {
	return string(o)
}

// Change describes an accepted transition.
type Change struct {
	Operation Operation
	Before    State
	After     State
}

type Observer func(change Change)

type Option func(*config)

type config struct {
	maxCount int
	initial  int
}

// WithMaxCount sets the ceiling. It must not be negative.
func WithMaxCount(maxCount int) Option {
	return func(c *config) {
		c.maxCount = maxCount
	}
}

// WithInitialCount starts the counter at count instead of zero.
func WithInitialCount(count int) Option {
	return func(c *config) {
		c.initial = count
	}
}

// Store owns one State and is the only way to change it. Every mutation
// replaces the whole value; Read always returns a complete snapshot.
//
// Observers registered with Subscribe are called in registration order after
// each accepted change, outside the state lock. They may Read the store but
// must not mutate it.
type Store struct {
	mu        sync.Mutex
	state     State
	observers []subscription
	next      int

	// serialises mutations so observers see changes in order
	writer sync.Mutex
}

type subscription struct {
	id       int
	observer Observer
}

func New(options ...Option) (*Store, error) {
	c := config{maxCount: DefaultMaxCount}
	for _, option := range options {
		option(&c)
	}

	if c.maxCount < 0 {
		return nil, errors.Errorf("max count must not be negative, got %d", c.maxCount)
	}

	state := State{Counter: c.initial, MaxCount: c.maxCount}
	if !state.valid() {
		return nil, errors.Errorf("initial count %d is outside [0, %d]", c.initial, c.maxCount)
	}

	return &Store{state: state}, nil
}

// MustNew is New for options known to be valid.
func MustNew(options ...Option) *Store {
	store, err := New(options...)
	if err != nil {
		panic(err)
	}

	return store
}

func (s *Store) Read() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Increment raises the counter by one and reports true, or leaves it at the
// ceiling and reports false.
func (s *Store) Increment() bool {
	var ok bool
	s.apply(OperationIncrement, func(current State) State {
		var next State
		next, ok = current.Increment()
		return next
	})

	return ok
}

func (s *Store) Decrement() {
	s.apply(OperationDecrement, State.Decrement)
}

func (s *Store) Reset() {
	s.apply(OperationReset, State.Reset)
}

// Subscribe registers an observer and returns the function that removes it.
func (s *Store) Subscribe(observer Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.observers = append(s.observers, subscription{id: id, observer: observer})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) apply(operation Operation, transition func(State) State) {
	s.writer.Lock()
	defer s.writer.Unlock()

	s.mu.Lock()
	before := s.state
	after := transition(before)
	if after == before {
		s.mu.Unlock()
		return
	}

	s.state = after
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	change := Change{Operation: operation, Before: before, After: after}
	for _, sub := range observers {
		sub.observer(change)
	}
}
