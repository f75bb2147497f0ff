package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTransitions(t *testing.T) {
	t.Run("increment below the ceiling", func(t *testing.T) {
		next, ok := State{Counter: 9, MaxCount: 10}.Increment()
		assert.True(t, ok)
		assert.Equal(t, State{Counter: 10, MaxCount: 10}, next)
		assert.True(t, next.IsMaxReached())
	})

	t.Run("increment at the ceiling", func(t *testing.T) {
		current := State{Counter: 10, MaxCount: 10}
		next, ok := current.Increment()
		assert.False(t, ok)
		assert.Equal(t, current, next)
	})

	t.Run("decrement at the floor", func(t *testing.T) {
		assert.Equal(t, State{MaxCount: 10}, State{MaxCount: 10}.Decrement())
	})

	t.Run("reset keeps the ceiling", func(t *testing.T) {
		assert.Equal(t, State{MaxCount: 3}, State{Counter: 2, MaxCount: 3}.Reset())
	})

	t.Run("derived flags", func(t *testing.T) {
		cases := []struct {
			state        State
			canDecrement bool
			canReset     bool
			isMaxReached bool
		}{
			{State{Counter: 0, MaxCount: 10}, false, false, false},
			{State{Counter: 1, MaxCount: 10}, true, true, false},
			{State{Counter: 10, MaxCount: 10}, true, true, true},
			{State{Counter: 0, MaxCount: 0}, false, false, true},
		}

		for _, c := range cases {
			assert.Equal(t, c.canDecrement, c.state.CanDecrement(), "%+v", c.state)
			assert.Equal(t, c.canReset, c.state.CanReset(), "%+v", c.state)
			assert.Equal(t, c.isMaxReached, c.state.IsMaxReached(), "%+v", c.state)
		}
	})
}
