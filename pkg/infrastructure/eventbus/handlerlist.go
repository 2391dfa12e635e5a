package eventbus

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/kookbot/kook-go/pkg/domain"
)

// HandlerList is the handler registry of one concrete event variant E.
//
// Register and DispatchAll are serialized by a lock private to the list, so
// lists of different variants never contend. A handler must not register on,
// or dispatch through, the list that is currently invoking it.
type HandlerList[E domain.Event] struct {
	mu       sync.Mutex
	key      domain.EventType
	handlers map[handlerKey]*entry[E]
	logger   *slog.Logger
}

type handlerKey struct {
	owner any
	name  string
}

type entry[E domain.Event] struct {
	name     string
	owner    any
	internal bool
	handler  Handler[E]
}

// NewHandlerList creates an empty registry for E. Handler failures are
// reported to logger (slog.Default when nil). Most callers obtain lists
// through Install instead.
func NewHandlerList[E domain.Event](logger *slog.Logger) *HandlerList[E] {
	if logger == nil {
		logger = slog.Default()
	}
	key, _ := typeKey[E]()
	return &HandlerList[E]{
		key:      key,
		handlers: make(map[handlerKey]*entry[E]),
		logger:   logger,
	}
}

// EventType returns the key of the variant this list serves.
func (l *HandlerList[E]) EventType() domain.EventType { return l.key }

// Len returns the number of registered handlers.
func (l *HandlerList[E]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handlers)
}

// Register validates d and stores it. Registration is additive: a descriptor
// with the same owner and name as a stored one is rejected, never replaced.
// On error the list is unchanged.
func (l *HandlerList[E]) Register(d Descriptor[E]) error {
	if err := validate(d); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	k := handlerKey{owner: d.Owner, name: d.Name}
	if _, ok := l.handlers[k]; ok {
		return &RegistrationError{Kind: ErrDuplicateHandler, Event: l.key, Handler: d.Name, Detail: ownerName(d.Owner)}
	}
	l.handlers[k] = &entry[E]{
		name:     d.Name,
		owner:    d.Owner,
		internal: d.Internal,
		handler:  d.Handler,
	}
	return nil
}

// DispatchAll invokes every registered handler with event. All internal
// handlers complete before the first normal handler starts; order within a
// phase is unspecified. Handler errors and panics are logged and skipped.
func (l *HandlerList[E]) DispatchAll(event E) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.handlers) == 0 {
		return
	}

	internal := make([]*entry[E], 0, len(l.handlers))
	normal := make([]*entry[E], 0, len(l.handlers))
	for _, h := range l.handlers {
		if h.internal {
			internal = append(internal, h)
		} else {
			normal = append(normal, h)
		}
	}

	var dispatchID string
	l.callAll(internal, event, &dispatchID)
	l.callAll(normal, event, &dispatchID)
}

func (l *HandlerList[E]) callAll(entries []*entry[E], event E, dispatchID *string) {
	for _, h := range entries {
		err := invoke(h.handler, event)
		if err == nil {
			continue
		}
		// One correlation ID per dispatch call, minted on first failure.
		if *dispatchID == "" {
			*dispatchID = uuid.NewString()
		}
		l.logger.Error("eventbus: handler failed",
			"event", l.key,
			"handler", h.name,
			"owner", ownerName(h.owner),
			"internal", h.internal,
			"dispatch", *dispatchID,
			"err", err)
	}
}

// dispatch is the type-erased entry used by Manager.
func (l *HandlerList[E]) dispatch(event domain.Event) {
	e, ok := event.(E)
	if !ok {
		l.logger.Error("eventbus: event does not match registry",
			"event", l.key, "type", fmt.Sprintf("%T", event))
		return
	}
	l.DispatchAll(e)
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string { return fmt.Sprintf("handler panicked: %v", p.Value) }

func invoke[E domain.Event](h Handler[E], event E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return h.Handle(event)
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func validate[E domain.Event](d Descriptor[E]) error {
	fail := func(kind ErrorKind, detail string) error {
		key, _ := typeKey[E]()
		return &RegistrationError{Kind: kind, Event: key, Handler: d.Name, Detail: detail}
	}

	if !d.marked {
		return fail(ErrHandlerNotMarked, "build descriptors with eventbus.Listen or eventbus.ListenFunc")
	}
	if d.Handler == nil {
		return fail(ErrHandlerBinding, "handler is nil")
	}
	if d.Name == "" {
		return fail(ErrHandlerBinding, "handler has no name")
	}
	if d.Owner != nil {
		rv := reflect.ValueOf(d.Owner)
		if rv.Kind() != reflect.Pointer {
			return fail(ErrHandlerBinding, fmt.Sprintf("owner %T is not a pointer", d.Owner))
		}
		if rv.IsNil() {
			return fail(ErrHandlerBinding, fmt.Sprintf("owner %T is nil; pass no owner for free functions", d.Owner))
		}
	}
	if isAbstract[E]() {
		return fail(ErrAbstractEvent, typeName[E]())
	}
	if _, ok := typeKey[E](); !ok {
		return fail(ErrNoRegistry, typeName[E]()+".EventType() must return a non-empty key on the zero value")
	}
	return nil
}

func isAbstract[E domain.Event]() bool {
	return reflect.TypeOf((*E)(nil)).Elem().Kind() == reflect.Interface
}

// typeKey calls EventType on the zero value of E.
func typeKey[E domain.Event]() (key domain.EventType, ok bool) {
	defer func() {
		if recover() != nil {
			key, ok = "", false
		}
	}()
	var zero E
	key = zero.EventType()
	return key, key != ""
}

func typeName[E domain.Event]() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}

func ownerName(owner any) string {
	if owner == nil {
		return ""
	}
	return fmt.Sprintf("%T", owner)
}
