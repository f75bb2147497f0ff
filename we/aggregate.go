package we

type Aggregate struct {
	Id       AggregateId     `json:"id"`
	Events   []RecordedEvent `json:"events,omitempty"`
	Revision Revision        `json:"revision"`
}

// Last returns the most recent event of the aggregate, if any.
func (a Aggregate) Last() (RecordedEvent, bool) {
	if len(a.Events) == 0 {
		return RecordedEvent{}, false
	}

	return a.Events[len(a.Events)-1], true
}
