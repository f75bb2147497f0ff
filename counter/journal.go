package counter

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/weegigs/wee-counter-go/we"
)

const AggregateType = "counter"

// Journal records the accepted changes of one Store as domain events under
// the session's aggregate id. Recording failures are logged and never reach
// the store.
type Journal struct {
	events we.EventStore
	loader *we.EntityLoader[State]
	id     we.AggregateId
	log    zerolog.Logger

	lk       sync.Mutex
	revision we.Revision
	detach   func()
}

func NewJournal(events we.EventStore, session string, log zerolog.Logger) *Journal {
	id := we.AggregateId{Type: AggregateType, Key: session}

	return &Journal{
		events:   events,
		loader:   Loader(events),
		id:       id,
		log:      log.With().Str("aggregate", id.String()).Logger(),
		revision: we.InitialRevision,
	}
}

func (j *Journal) Id() we.AggregateId {
	return j.id
}

// Attach records the store's current state as the session start and follows
// its changes until Close.
func (j *Journal) Attach(ctx context.Context, store *Store) error {
	j.lk.Lock()
	defer j.lk.Unlock()

	if j.detach != nil {
		return errors.New("journal is already attached")
	}

	state := store.Read()
	if err := j.publish(ctx, Started{Counter: state.Counter, MaxCount: state.MaxCount}); err != nil {
		return errors.Wrap(err, "failed to record session start")
	}

	j.detach = store.Subscribe(func(change Change) {
		j.lk.Lock()
		defer j.lk.Unlock()

		event := EventOf(change)
		if err := j.publish(ctx, event); err != nil {
			j.log.Error().Err(err).Str("operation", change.Operation.String()).Msg("failed to record change")
			return
		}

		j.log.Debug().
			Str("type", we.EventTypeOf(event).String()).
			Int("counter", change.After.Counter).
			Msg("recorded change")
	})

	return nil
}

func (j *Journal) publish(ctx context.Context, event we.DomainEvent) error {
	if err := j.events.Publish(ctx, j.id, we.Options(we.WithExpectedRevision(j.revision)), event); err != nil {
		return err
	}

	revision, err := we.CurrentRevision(ctx, j.events, j.id)
	if err != nil {
		return err
	}

	j.revision = revision
	return nil
}

// Replay renders the recorded events back into a State.
func (j *Journal) Replay(ctx context.Context) (State, error) {
	entity, err := j.loader.Load(ctx, j.id)
	if err != nil {
		return State{}, errors.Wrap(err, "failed to replay journal")
	}

	if !entity.Initialized() {
		return State{}, errors.Errorf("journal %s has not been started", j.id)
	}

	return *entity.State, nil
}

func (j *Journal) History(ctx context.Context) ([]we.RecordedEvent, error) {
	aggregate, err := j.events.Load(ctx, j.id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load journal")
	}

	return aggregate.Events, nil
}

// Close stops following the store.
func (j *Journal) Close() {
	j.lk.Lock()
	defer j.lk.Unlock()

	if j.detach != nil {
		j.detach()
		j.detach = nil
	}
}
