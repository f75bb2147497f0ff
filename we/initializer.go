package we

// Initializer creates the entity state from the first event of an aggregate.
type Initializer[T any] interface {
	Initialize(evt *RecordedEvent) (*T, error)
}

type InitializerFunction[T any, E any] func(evt *E) (*T, error)

func (f InitializerFunction[T, E]) Initialize(evt *RecordedEvent) (*T, error) {
	var event E
	if err := evt.Decode(&event); err != nil {
		return nil, err
	}

	return f(&event)
}

type Initializers[T any] map[EventType]Initializer[T]
