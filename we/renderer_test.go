package we

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tally struct {
	Total int
}

type opened struct {
	Start int `json:"start"`
}

type added struct {
	Amount int `json:"amount"`
}

func record(t *testing.T, sequence uint64, event DomainEvent) RecordedEvent {
	data, err := MarshalToData(event)
	require.NoError(t, err)

	revision, err := EncodeRevision(time.Now(), sequence)
	require.NoError(t, err)

	return RecordedEvent{
		Revision:  revision,
		EventType: EventTypeOf(event),
		Data:      data,
	}
}

func tallyRenderer() *Renderer[tally] {
	return &Renderer[tally]{
		Initializers: Initializers[tally]{
			EventTypeOf(opened{}): InitializerFunction[tally, opened](func(evt *opened) (*tally, error) {
				return &tally{Total: evt.Start}, nil
			}),
		},
		Reducers: Reducers[tally]{
			EventTypeOf(added{}): ReducerFunction[tally, added](func(state *tally, evt *added) error {
				state.Total += evt.Amount
				return nil
			}),
		},
	}
}

func TestRenderer(t *testing.T) {
	ctx := context.Background()
	id := AggregateId{Type: "tally", Key: "1"}

	t.Run("renders an empty aggregate as uninitialized", func(t *testing.T) {
		entity, err := tallyRenderer().Render(ctx, Aggregate{Id: id, Revision: InitialRevision})
		require.NoError(t, err)

		assert.False(t, entity.Initialized())
		assert.Nil(t, entity.State)
		assert.Equal(t, EntityType("we:tally"), entity.Type)
	})

	t.Run("skips updates before the initializer", func(t *testing.T) {
		events := []RecordedEvent{
			record(t, 1, added{Amount: 100}),
			record(t, 2, opened{Start: 2}),
			record(t, 3, added{Amount: 3}),
			record(t, 4, added{Amount: 4}),
		}
		aggregate := Aggregate{Id: id, Events: events, Revision: events[len(events)-1].Revision}

		entity, err := tallyRenderer().Render(ctx, aggregate)
		require.NoError(t, err)

		assert.True(t, entity.Initialized())
		assert.Equal(t, 9, entity.State.Total)
		assert.Equal(t, aggregate.Revision, entity.Revision)
	})

	t.Run("wraps decoding failures", func(t *testing.T) {
		broken := record(t, 2, added{Amount: 1})
		broken.Data.Encoding = "text/plain"
		events := []RecordedEvent{record(t, 1, opened{}), broken}

		_, err := tallyRenderer().Render(ctx, Aggregate{Id: id, Events: events, Revision: broken.Revision})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to process update with we:added")

		var invalid *InvalidEncodingError
		assert.ErrorAs(t, err, &invalid)
	})
}
