package counter

import (
	"sync"
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertConsistent(t *testing.T, state State) {
	t.Helper()

	assert.GreaterOrEqual(t, state.Counter, 0)
	assert.LessOrEqual(t, state.Counter, state.MaxCount)
	assert.Equal(t, state.Counter > 0, state.CanDecrement())
	assert.Equal(t, state.Counter != 0, state.CanReset())
	assert.Equal(t, state.Counter >= state.MaxCount, state.IsMaxReached())
}

func startsFresh(t *testing.T) {
	store, err := New()
	require.NoError(t, err)

	state := store.Read()
	assert.Equal(t, State{Counter: 0, MaxCount: DefaultMaxCount}, state)
	assert.False(t, state.CanDecrement())
	assert.False(t, state.CanReset())
	assert.False(t, state.IsMaxReached())
}

func incrementsToTheCeiling(t *testing.T) {
	store := MustNew()

	for i := 1; i <= 10; i++ {
		assert.True(t, store.Increment(), "increment %d", i)
		assert.Equal(t, i, store.Read().Counter)
	}

	assert.True(t, store.Read().IsMaxReached())
	assert.False(t, store.Increment())
	assert.Equal(t, 10, store.Read().Counter)
	assert.False(t, store.Increment())
	assert.Equal(t, 10, store.Read().Counter)
}

func decrementsToTheFloor(t *testing.T) {
	store := MustNew(WithInitialCount(5))

	for i := 0; i < 5; i++ {
		store.Decrement()
	}
	assert.Equal(t, 0, store.Read().Counter)

	store.Decrement()
	assert.Equal(t, 0, store.Read().Counter)
	assertConsistent(t, store.Read())
}

func resetClearsFlags(t *testing.T) {
	store := MustNew(WithInitialCount(7))

	store.Reset()

	state := store.Read()
	assert.Equal(t, 0, state.Counter)
	assert.Equal(t, DefaultMaxCount, state.MaxCount)
	assert.False(t, state.CanReset())
	assert.False(t, state.CanDecrement())
}

func incrementThenReset(t *testing.T) {
	store := MustNew()

	assert.True(t, store.Increment())
	assert.Equal(t, 1, store.Read().Counter)

	store.Reset()
	assert.Equal(t, 0, store.Read().Counter)
}

func resetIsIdempotent(t *testing.T) {
	once := MustNew(WithInitialCount(4))
	twice := MustNew(WithInitialCount(4))

	once.Reset()
	twice.Reset()
	twice.Reset()

	assert.Equal(t, once.Read(), twice.Read())
}

func rejectsInvalidConfiguration(t *testing.T) {
	_, err := New(WithMaxCount(-1))
	assert.EqualError(t, err, "max count must not be negative, got -1")

	_, err = New(WithInitialCount(11))
	assert.EqualError(t, err, "initial count 11 is outside [0, 10]")

	_, err = New(WithInitialCount(-1))
	assert.Error(t, err)

	assert.Panics(t, func() { MustNew(WithMaxCount(-5)) })
}

func supportsZeroCeiling(t *testing.T) {
	store := MustNew(WithMaxCount(0))

	assert.True(t, store.Read().IsMaxReached())
	assert.False(t, store.Increment())
	store.Decrement()
	store.Reset()
	assert.Equal(t, State{Counter: 0, MaxCount: 0}, store.Read())
}

func snapshotsAreImmutable(t *testing.T) {
	store := MustNew(WithInitialCount(3))

	snapshot := store.Read()
	store.Increment()

	assert.Equal(t, 3, snapshot.Counter)
	assert.Equal(t, 4, store.Read().Counter)
}

func keepsTheInvariant(t *testing.T) {
	fake := faker.New()

	for run := 0; run < 50; run++ {
		maxCount := fake.IntBetween(0, 15)
		store := MustNew(WithMaxCount(maxCount))

		for step := 0; step < 200; step++ {
			before := store.Read()

			switch fake.IntBetween(0, 2) {
			case 0:
				ok := store.Increment()
				assert.Equal(t, !before.IsMaxReached(), ok)
				if ok {
					assert.Equal(t, before.Counter+1, store.Read().Counter)
				} else {
					assert.Equal(t, before, store.Read())
				}
			case 1:
				store.Decrement()
				if before.Counter == 0 {
					assert.Equal(t, before, store.Read())
				} else {
					assert.Equal(t, before.Counter-1, store.Read().Counter)
				}
			default:
				store.Reset()
				assert.Equal(t, 0, store.Read().Counter)
			}

			assert.Equal(t, maxCount, store.Read().MaxCount)
			assertConsistent(t, store.Read())
		}
	}
}

func TestStore(t *testing.T) {
	t.Run("starts fresh", startsFresh)
	t.Run("increments to the ceiling", incrementsToTheCeiling)
	t.Run("decrements to the floor", decrementsToTheFloor)
	t.Run("reset clears flags", resetClearsFlags)
	t.Run("increment then reset", incrementThenReset)
	t.Run("reset is idempotent", resetIsIdempotent)
	t.Run("rejects invalid configuration", rejectsInvalidConfiguration)
	t.Run("supports a zero ceiling", supportsZeroCeiling)
	t.Run("snapshots are immutable", snapshotsAreImmutable)
	t.Run("keeps the invariant", keepsTheInvariant)
}

func notifiesAcceptedChanges(t *testing.T) {
	store := MustNew(WithMaxCount(2))

	var changes []Change
	store.Subscribe(func(change Change) {
		changes = append(changes, change)
	})

	store.Decrement()
	store.Reset()
	store.Increment()
	store.Increment()
	store.Increment()
	store.Decrement()
	store.Reset()
	store.Reset()

	assert.Equal(t, []Change{
		{Operation: OperationIncrement, Before: State{0, 2}, After: State{1, 2}},
		{Operation: OperationIncrement, Before: State{1, 2}, After: State{2, 2}},
		{Operation: OperationDecrement, Before: State{2, 2}, After: State{1, 2}},
		{Operation: OperationReset, Before: State{1, 2}, After: State{0, 2}},
	}, changes)
}

func stopsNotifyingAfterCancel(t *testing.T) {
	store := MustNew()

	first, second := 0, 0
	cancel := store.Subscribe(func(Change) { first++ })
	store.Subscribe(func(Change) { second++ })

	store.Increment()
	cancel()
	cancel()
	store.Increment()

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func observersMayRead(t *testing.T) {
	store := MustNew()

	var seen []int
	store.Subscribe(func(change Change) {
		seen = append(seen, store.Read().Counter)
		assert.Equal(t, change.After, store.Read())
	})

	store.Increment()
	store.Increment()

	assert.Equal(t, []int{1, 2}, seen)
}

func serialisesConcurrentMutations(t *testing.T) {
	store := MustNew(WithMaxCount(1000))

	var mu sync.Mutex
	last := 0
	ordered := true
	store.Subscribe(func(change Change) {
		mu.Lock()
		defer mu.Unlock()
		if change.Before.Counter != last {
			ordered = false
		}
		last = change.After.Counter
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				store.Increment()
				_ = store.Read()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, store.Read().Counter)
	assert.True(t, ordered)
	assert.Equal(t, 800, last)
}

func TestSubscriptions(t *testing.T) {
	t.Run("notifies accepted changes only", notifiesAcceptedChanges)
	t.Run("stops notifying after cancel", stopsNotifyingAfterCancel)
	t.Run("observers may read", observersMayRead)
	t.Run("serialises concurrent mutations", serialisesConcurrentMutations)
}
