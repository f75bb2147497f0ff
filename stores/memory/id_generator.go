package memory

import (
	"math/rand"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/weegigs/wee-counter-go/we"
)

type IDGenerator interface {
	Create() we.EventID
}

func WithIdGenerator(generator IDGenerator) EventStoreOption {
	return func(store *EventStore) {
		store.id = generator
	}
}

func NewDefaultIdGenerator(clock Clock) IDGenerator {
	return &DefaultIdGenerator{
		clock:   clock,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(clock.Now().UnixNano())), 0),
	}
}

type DefaultIdGenerator struct {
	lk      sync.Mutex
	clock   Clock
	entropy *ulid.MonotonicEntropy
}

func (g *DefaultIdGenerator) Create() we.EventID {
	g.lk.Lock()
	defer g.lk.Unlock()

	return we.EventID(ulid.MustNew(ulid.Timestamp(g.clock.Now()), g.entropy).String())
}
