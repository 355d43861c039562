package domain

// EventKind enumerates the pipeline decisions operators audit per run.
type EventKind string

const (
	EventStored        EventKind = "stored"
	EventSkippedStale  EventKind = "skipped_stale"
	EventDroppedNoID   EventKind = "dropped_no_id"
	EventSourceSkipped EventKind = "source_skipped"
	EventFetchFailed   EventKind = "fetch_failed"
)

// Event is one observable pipeline decision (a write, a skip, a failed fetch).
type Event struct {
	Kind     EventKind
	Source   string
	RecordID string
	Title    string
	Err      error
}

// EventSink receives pipeline events; implementations must not block.
type EventSink func(Event)

// Emit forwards the event when a sink is configured.
func (s EventSink) Emit(e Event) {
	if s != nil {
		s(e)
	}
}
