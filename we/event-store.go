package we

import (
	"context"
	"errors"
)

type EventLoader = func(ctx context.Context, id AggregateId) (Aggregate, error)
type EventPublisher = func(ctx context.Context, aggregateId AggregateId, options PublishOptions, events ...DomainEvent) error

type EventStore interface {
	Load(ctx context.Context, id AggregateId) (Aggregate, error)
	Publish(ctx context.Context, aggregateId AggregateId, options PublishOptions, events ...DomainEvent) error
}

// RevisionReader is implemented by stores that can report the revision of an
// aggregate without loading its events.
type RevisionReader interface {
	Revision(ctx context.Context, id AggregateId) (Revision, error)
}

// CurrentRevision returns the revision of the aggregate, loading it only when
// the store is not a RevisionReader.
func CurrentRevision(ctx context.Context, store EventStore, id AggregateId) (Revision, error) {
	if reader, ok := store.(RevisionReader); ok {
		return reader.Revision(ctx, id)
	}

	aggregate, err := store.Load(ctx, id)
	if err != nil {
		return "", err
	}

	return aggregate.Revision, nil
}

var RevisionConflict = errors.New("revision-conflict")

type PublishOptions struct {
	RecordedEventMetadata
	ExpectedRevision Revision
}

type PublishOption func(modifier *PublishOptions)

func Options(options ...PublishOption) PublishOptions {
	modifiers := &PublishOptions{}
	for _, option := range options {
		option(modifiers)
	}

	return *modifiers
}

// WithExpectedRevision makes the publish fail with RevisionConflict unless the
// aggregate is still at the given revision.
func WithExpectedRevision(expectedRevision Revision) PublishOption {
	return func(modifier *PublishOptions) {
		modifier.ExpectedRevision = expectedRevision
	}
}

func WithCorrelationId(correlationId CorrelationID) PublishOption {
	return func(modifier *PublishOptions) {
		modifier.RecordedEventMetadata.CorrelationId = correlationId
	}
}

func WithCausationId(correlationId CorrelationID, causationId EventID) PublishOption {
	return func(modifier *PublishOptions) {
		modifier.RecordedEventMetadata.CausationId = causationId
		modifier.RecordedEventMetadata.CorrelationId = correlationId
	}
}
