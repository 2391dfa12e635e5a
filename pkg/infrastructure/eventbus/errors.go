package eventbus

import (
	"fmt"

	"github.com/kookbot/kook-go/pkg/domain"
)

// ErrorKind classifies a rejected registration. Compare with errors.Is.
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

const (
	ErrDuplicateHandler ErrorKind = "handler already registered"
	ErrHandlerBinding   ErrorKind = "invalid handler binding"
	ErrAbstractEvent    ErrorKind = "cannot listen to an abstract event type"
	ErrNoRegistry       ErrorKind = "event type has no handler registry"
	ErrHandlerNotMarked ErrorKind = "descriptor is not marked as an event handler"
)

// ErrKeyConflict is returned by Install when two variants claim one key.
const ErrKeyConflict ErrorKind = "event type key already owned by another variant"

// RegistrationError reports why a descriptor was not stored. Nothing is
// stored when Register returns one.
type RegistrationError struct {
	Kind    ErrorKind
	Event   domain.EventType
	Handler string
	Detail  string
}

func (e *RegistrationError) Error() string {
	msg := fmt.Sprintf("eventbus: register %q on %q: %s", e.Handler, e.Event, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes Kind to errors.Is.
func (e *RegistrationError) Unwrap() error { return e.Kind }
