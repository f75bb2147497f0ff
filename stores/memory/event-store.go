// Package memory holds events for the lifetime of the process. Nothing
// survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/weegigs/wee-counter-go/we"
)

type EventStoreOption func(*EventStore)

func NewEventStore(options ...EventStoreOption) *EventStore {
	store := &EventStore{
		streams: make(map[we.EncodedAggregateId][]we.RecordedEvent),
	}

	for _, option := range options {
		option(store)
	}

	if store.clock == nil {
		store.clock = defaultClock{}
	}

	if store.id == nil {
		store.id = NewDefaultIdGenerator(store.clock)
	}

	return store
}

type EventStore struct {
	lk      sync.RWMutex
	streams map[we.EncodedAggregateId][]we.RecordedEvent
	clock   Clock
	id      IDGenerator
}

var (
	_ we.EventStore     = (*EventStore)(nil)
	_ we.RevisionReader = (*EventStore)(nil)
)

func (es *EventStore) Publish(ctx context.Context, aggregateId we.AggregateId, options we.PublishOptions, events ...we.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([]we.RecordedEvent, len(events))
	for index, event := range events {
		data, err := we.MarshalToData(event)
		if err != nil {
			return errors.Wrap(err, "failed to marshal event")
		}

		records[index] = we.RecordedEvent{
			AggregateId: aggregateId,
			EventID:     es.id.Create(),
			EventType:   we.EventTypeOf(event),
			Metadata:    options.RecordedEventMetadata,
			Data:        data,
		}
	}

	es.lk.Lock()
	defer es.lk.Unlock()

	key := aggregateId.Encode()
	stream := es.streams[key]

	expected := options.ExpectedRevision
	if expected != "" && expected != revisionOf(stream) {
		return we.RevisionConflict
	}

	now := es.clock.Now()
	if len(stream) > 0 {
		// a clock running backwards must not reorder revisions
		if last := stream[len(stream)-1].Revision.Time(); now.Before(last) {
			now = last
		}
	}

	timestamp := we.TimestampFromTime(now)
	for index := range records {
		revision, err := we.EncodeRevision(now, uint64(len(stream)+index+1))
		if err != nil {
			return err
		}

		records[index].Revision = revision
		records[index].Timestamp = timestamp
	}

	es.streams[key] = append(stream, records...)

	return nil
}

func (es *EventStore) Load(ctx context.Context, id we.AggregateId) (we.Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return we.Aggregate{}, err
	}

	es.lk.RLock()
	defer es.lk.RUnlock()

	stream := es.streams[id.Encode()]
	events := make([]we.RecordedEvent, len(stream))
	copy(events, stream)

	return we.Aggregate{
		Id:       id,
		Events:   events,
		Revision: revisionOf(stream),
	}, nil
}

// Revision reports the aggregate's current revision without copying its events.
func (es *EventStore) Revision(ctx context.Context, id we.AggregateId) (we.Revision, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	es.lk.RLock()
	defer es.lk.RUnlock()

	return revisionOf(es.streams[id.Encode()]), nil
}

// Remove drops every event of the aggregate and reports how many were held.
func (es *EventStore) Remove(ctx context.Context, id we.AggregateId) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	es.lk.Lock()
	defer es.lk.Unlock()

	key := id.Encode()
	count := len(es.streams[key])
	delete(es.streams, key)

	return count, nil
}

func revisionOf(stream []we.RecordedEvent) we.Revision {
	if len(stream) == 0 {
		return we.InitialRevision
	}

	return stream[len(stream)-1].Revision
}
