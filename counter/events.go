package counter

import "github.com/weegigs/wee-counter-go/we"

// Started opens the journal of a session with the state the store was
// created in.
type Started struct {
	Counter  int `json:"counter"`
	MaxCount int `json:"max_count"`
}

type Incremented struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type Decremented struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type Reset struct {
	From int `json:"from"`
}

// EventOf maps an accepted change onto the domain event recorded for it.
func EventOf(change Change) we.DomainEvent {
	switch change.Operation {
	case OperationIncrement:
		return Incremented{From: change.Before.Counter, To: change.After.Counter}
	case OperationDecrement:
		return Decremented{From: change.Before.Counter, To: change.After.Counter}
	default:
		return Reset{From: change.Before.Counter}
	}
}

func started() we.Initializer[State] {
	var initializer we.InitializerFunction[State, Started] = func(evt *Started) (*State, error) {
		return &State{Counter: evt.Counter, MaxCount: evt.MaxCount}, nil
	}

	return initializer
}

func incremented() we.Reducer[State] {
	var reducer we.ReducerFunction[State, Incremented] = func(state *State, evt *Incremented) error {
		state.Counter = evt.To
		return nil
	}

	return reducer
}

func decremented() we.Reducer[State] {
	var reducer we.ReducerFunction[State, Decremented] = func(state *State, evt *Decremented) error {
		state.Counter = evt.To
		return nil
	}

	return reducer
}

func reset() we.Reducer[State] {
	var reducer we.ReducerFunction[State, Reset] = func(state *State, _ *Reset) error {
		state.Counter = 0
		return nil
	}

	return reducer
}

// Renderer replays a session journal into a State.
func Renderer() *we.Renderer[State] {
	return &we.Renderer[State]{
		Initializers: we.Initializers[State]{
			we.EventTypeOf(Started{}): started(),
		},
		Reducers: we.Reducers[State]{
			we.EventTypeOf(Incremented{}): incremented(),
			we.EventTypeOf(Decremented{}): decremented(),
			we.EventTypeOf(Reset{}):       reset(),
		},
	}
}

func Loader(store we.EventStore) *we.EntityLoader[State] {
	return &we.EntityLoader[State]{Loader: store.Load, Renderer: Renderer()}
}
