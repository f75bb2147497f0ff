package we

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Renderer folds the events of an aggregate into entity state. Events before
// the first one with an initializer are skipped, as are events without a
// reducer.
type Renderer[T any] struct {
	Initializers Initializers[T]
	Reducers     Reducers[T]
}

func (r *Renderer[T]) Render(ctx context.Context, aggregate Aggregate) (Entity[T], error) {
	var zero T

	_, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("render %s", NameOf(zero)))
	defer span.End()
	span.SetAttributes(
		attribute.String("aggregate", aggregate.Id.String()),
		attribute.Int("events", len(aggregate.Events)),
	)

	var state *T
	for i := range aggregate.Events {
		event := &aggregate.Events[i]
		eventType := event.EventType

		if state == nil {
			initializer := r.Initializers[eventType]
			if initializer == nil {
				continue
			}

			initial, err := initializer.Initialize(event)
			if err != nil {
				return Entity[T]{}, errors.Wrapf(err, "failed to initialize with %s", eventType)
			}

			state = initial
			continue
		}

		reducer := r.Reducers[eventType]
		if reducer == nil {
			continue
		}

		if err := reducer.Reduce(state, event); err != nil {
			return Entity[T]{}, errors.Wrapf(err, "failed to process update with %s", eventType)
		}
	}

	return Entity[T]{
		Aggregate: aggregate.Id,
		Revision:  aggregate.Revision,
		Type:      EntityTypeOf(zero),
		State:     state,
	}, nil
}
