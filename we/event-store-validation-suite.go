package we

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jaswdr/faker"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// EventStoreValidationSuite checks the behaviour every EventStore must share.
func NewEventStoreValidationSuite(ctx context.Context, store EventStore) *EventStoreValidationSuite {
	return &EventStoreValidationSuite{
		store: store,
		ctx:   ctx,
		faker: faker.New(),
	}
}

type EventStoreValidationSuite struct {
	store EventStore
	ctx   context.Context
	faker faker.Faker
}

type StoreValidationEvent struct {
	TestStringValue string `json:"test_string_value"`
	TestIntValue    int    `json:"test_int_value"`
}

func (s *EventStoreValidationSuite) Run(t *testing.T) {
	t.Run("loads an initial revision", s.LoadInitial)
	t.Run("loads a revision with events", s.LoadsRevisionWithEvents)
	t.Run("publishes single event", s.PublishesSingleEvent)
	t.Run("publishes multiple events in a single transaction", s.PublishesMultipleEvents)
	t.Run("preserves publish order", s.PreservesOrder)
	t.Run("returns a revision conflict with an initial revision", s.RevisionConflictOnInitialRevision)
	t.Run("returns a revision conflict on subsequent revision", s.RevisionConflictOnSubsequentRevision)
	t.Run("accepts the expected revision", s.AcceptsExpectedRevision)
	t.Run("supports causation id", s.Causation)
	t.Run("stamps events with their revision time", s.StampsEvents)
}

func (s *EventStoreValidationSuite) MakeTestAggregateId() AggregateId {
	return AggregateId{
		Type: "go-test",
		Key:  ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
	}
}

func (s *EventStoreValidationSuite) MakeTestEvent() StoreValidationEvent {
	return StoreValidationEvent{
		TestStringValue: s.faker.Lorem().Sentence(10),
		TestIntValue:    s.faker.Int(),
	}
}

func (s *EventStoreValidationSuite) MakeTestEvents(count int) []DomainEvent {
	events := make([]DomainEvent, count)
	for i := 0; i < count; i++ {
		events[i] = s.MakeTestEvent()
	}

	return events
}

func (s *EventStoreValidationSuite) LoadInitial(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	aggregate, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)

	assert.Empty(t, aggregate.Events)
	assert.Equal(t, InitialRevision, aggregate.Revision)
	assert.EqualValues(t, aggregateId, aggregate.Id)
}

func (s *EventStoreValidationSuite) PublishesSingleEvent(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	err := s.store.Publish(s.ctx, aggregateId, Options(), s.MakeTestEvent())

	assert.NoError(t, err)
}

func (s *EventStoreValidationSuite) PublishesMultipleEvents(t *testing.T) {
	events := s.MakeTestEvents(17)

	aggregateId := s.MakeTestAggregateId()
	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), events...))

	aggregate, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)
	assert.Len(t, aggregate.Events, 17)
}

func (s *EventStoreValidationSuite) LoadsRevisionWithEvents(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	event := s.MakeTestEvent()

	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), event))

	aggregate, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)

	require.Len(t, aggregate.Events, 1)
	assert.EqualValues(t, aggregateId, aggregate.Id)
	assert.NotEqual(t, InitialRevision, aggregate.Revision)
	assert.Equal(t, aggregate.Events[0].Revision, aggregate.Revision)
	assert.Equal(t, EventTypeOf(event), aggregate.Events[0].EventType)

	var decoded StoreValidationEvent
	require.NoError(t, aggregate.Events[0].Decode(&decoded))
	assert.Equal(t, event, decoded)
}

func (s *EventStoreValidationSuite) PreservesOrder(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), StoreValidationEvent{TestIntValue: i}))
	}

	aggregate, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)
	require.Len(t, aggregate.Events, 5)

	for i, recorded := range aggregate.Events {
		var decoded StoreValidationEvent
		require.NoError(t, recorded.Decode(&decoded))
		assert.Equal(t, i, decoded.TestIntValue)

		sequence, err := recorded.Revision.Sequence()
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), sequence)

		if i > 0 {
			assert.Greater(t, recorded.Revision.String(), aggregate.Events[i-1].Revision.String())
		}
	}
}

func (s *EventStoreValidationSuite) Last(id AggregateId) (*RecordedEvent, error) {
	loaded, err := s.store.Load(s.ctx, id)
	if err != nil {
		return nil, err
	}

	last, ok := loaded.Last()
	if !ok {
		return nil, assert.AnError
	}

	return &last, nil
}

func (s *EventStoreValidationSuite) RevisionConflictOnInitialRevision(t *testing.T) {
	event := s.MakeTestEvent()

	aggregateId := s.MakeTestAggregateId()
	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), event))

	err := s.store.Publish(s.ctx, aggregateId, Options(WithExpectedRevision(InitialRevision)), event)
	assert.Equal(t, RevisionConflict, err)
}

func (s *EventStoreValidationSuite) RevisionConflictOnSubsequentRevision(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	event := s.MakeTestEvent()

	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), event))

	first, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)

	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), event))

	err = s.store.Publish(s.ctx, aggregateId, Options(WithExpectedRevision(first.Revision)), event)
	assert.Equal(t, RevisionConflict, err)
}

func (s *EventStoreValidationSuite) AcceptsExpectedRevision(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	event := s.MakeTestEvent()

	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(WithExpectedRevision(InitialRevision)), event))

	first, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)

	assert.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(WithExpectedRevision(first.Revision)), event))
}

func (s *EventStoreValidationSuite) Causation(t *testing.T) {
	event := s.MakeTestEvent()

	aggregateId := s.MakeTestAggregateId()
	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), event))

	first, err := s.Last(aggregateId)
	require.NoError(t, err)

	correlationId := CorrelationID("event/" + first.EventID.String())

	err = s.store.Publish(
		s.ctx,
		aggregateId,
		Options(WithCausationId(correlationId, first.EventID)),
		event,
	)
	require.NoError(t, err)

	second, err := s.Last(aggregateId)
	require.NoError(t, err)

	assert.Equal(t, correlationId, second.Metadata.CorrelationId)
	assert.Equal(t, first.EventID, second.Metadata.CausationId)
}

func (s *EventStoreValidationSuite) StampsEvents(t *testing.T) {
	aggregateId := s.MakeTestAggregateId()
	require.NoError(t, s.store.Publish(s.ctx, aggregateId, Options(), s.MakeTestEvents(3)...))

	aggregate, err := s.store.Load(s.ctx, aggregateId)
	require.NoError(t, err)

	for _, recorded := range aggregate.Events {
		assert.Equal(t, recorded.Revision.Timestamp(), recorded.Timestamp)
		assert.NotEmpty(t, recorded.EventID)

		_, err := recorded.Timestamp.Time()
		assert.NoError(t, err)
	}
}
