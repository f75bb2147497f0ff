package we

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// EntityLoader loads an aggregate and renders it into an Entity[T].
type EntityLoader[T any] struct {
	Loader   EventLoader
	Renderer *Renderer[T]
}

func (s *EntityLoader[T]) Load(ctx context.Context, id AggregateId) (Entity[T], error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "load entity")
	defer span.End()
	span.SetAttributes(attribute.String("aggregate", id.String()))

	aggregate, err := s.Loader(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Entity[T]{}, errors.Wrapf(err, "failed to load %s", id)
	}

	entity, err := s.Renderer.Render(ctx, aggregate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Entity[T]{}, err
	}

	span.SetAttributes(attribute.String("revision", entity.Revision.String()))
	return entity, nil
}
