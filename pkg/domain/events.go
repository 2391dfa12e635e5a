package domain

import "time"

// ---------------------------------------------------------------------------
// Occurrences: the event capability shared by every variant
// ---------------------------------------------------------------------------

// EventType is the stable key of one concrete event variant. It is how the
// dispatch machinery locates the handler registry owned by that variant.
type EventType string

// String implements fmt.Stringer.
func (t EventType) String() string { return string(t) }

// Event is implemented by every platform occurrence.
//
// Concrete variants are value structs whose EventType method returns a
// constant and works on the zero value; interface types embedding Event only
// group variants and never own a registry.
type Event interface {
	// EventType returns the variant key.
	EventType() EventType
	// OccurredAt returns when the platform observed the happening.
	OccurredAt() time.Time
}

// BaseEvent carries the attributes common to every variant.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseEvent stamps an occurrence with t (UTC).
func NewBaseEvent(t time.Time) BaseEvent {
	return BaseEvent{Timestamp: t.UTC()}
}

// OccurredAt implements part of Event.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// ---------------------------------------------------------------------------
// Dispatch port
// ---------------------------------------------------------------------------

// Dispatcher delivers an occurrence to the handlers attached to its variant.
// Dispatch never fails from the producer's point of view.
type Dispatcher interface {
	Dispatch(event Event)
}
