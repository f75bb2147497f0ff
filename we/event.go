package we

import (
	"errors"
	"strings"
)

type EventID string

func (id EventID) String() string {
	return string(id)
}

type EventType string

func (et EventType) String() string {
	return string(et)
}

type EventTyped interface {
	EventType() EventType
}

type CorrelationID string

func (id CorrelationID) String() string {
	return string(id)
}

type Data struct {
	Encoding string `json:"encoding"`
	Data     []byte `json:"data"`
}

// AggregateId identifies the event stream of a single entity, for example the
// counter of one screen session.
type AggregateId struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type EncodedAggregateId string

func (id AggregateId) Encode() EncodedAggregateId {
	return EncodedAggregateId(id.Type + "." + id.Key)
}

func (id AggregateId) String() string {
	return id.Encode().String()
}

func (id EncodedAggregateId) String() string {
	return string(id)
}

func (id EncodedAggregateId) Decode() (AggregateId, error) {
	t, key, found := strings.Cut(string(id), ".")
	if !found || t == "" || key == "" {
		return AggregateId{}, errors.New("expected . delimiter in aggregate id")
	}

	return AggregateId{Type: t, Key: key}, nil
}

type DomainEvent any

func EventTypeOf(event DomainEvent) EventType {
	if typed, ok := event.(EventTyped); ok {
		return typed.EventType()
	}

	return EventType(NameOf(event))
}

type RecordedEventMetadata struct {
	CausationId   EventID       `json:"causationId,omitempty"`
	CorrelationId CorrelationID `json:"correlationId,omitempty"`
}

type RecordedEvent struct {
	AggregateId AggregateId           `json:"aggregate"`
	Revision    Revision              `json:"revision"`
	EventID     EventID               `json:"id"`
	EventType   EventType             `json:"type"`
	Timestamp   Timestamp             `json:"timestamp"`
	Metadata    RecordedEventMetadata `json:"metadata"`
	Data        Data                  `json:"data"`
}

// Decode unmarshals the event payload into value.
func (e *RecordedEvent) Decode(value any) error {
	return UnmarshalFromData(e.Data, value)
}
