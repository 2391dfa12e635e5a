package eventbus

import "github.com/kookbot/kook-go/pkg/domain"

// Handler reacts to occurrences of exactly one variant E. A returned error is
// logged by the registry and does not stop other handlers.
type Handler[E domain.Event] interface {
	Handle(event E) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[E domain.Event] func(event E) error

// Handle calls f(event).
func (f HandlerFunc[E]) Handle(event E) error { return f(event) }

// Descriptor identifies one handler attachable to the registry of E.
//
// Name and Owner together identify the handler: Owner is the receiver the
// handler is bound to (nil for free functions), Name distinguishes the
// handlers of one owner. Descriptors must be built with Listen or ListenFunc;
// a hand-assembled literal lacks the handler marker and is rejected.
type Descriptor[E domain.Event] struct {
	Name     string
	Owner    any
	Internal bool
	Handler  Handler[E]

	marked bool
}

// ListenOption configures a Descriptor.
type ListenOption func(*listenOptions)

type listenOptions struct {
	owner    any
	internal bool
}

// WithOwner binds the handler to a receiver. The owner must be a pointer.
func WithOwner(owner any) ListenOption {
	return func(o *listenOptions) { o.owner = owner }
}

// Internal places the handler in the internal phase, which completes before
// any normal handler of the same dispatch starts.
func Internal() ListenOption {
	return func(o *listenOptions) { o.internal = true }
}

// Listen marks h as an event handler named name.
func Listen[E domain.Event](name string, h Handler[E], opts ...ListenOption) Descriptor[E] {
	var o listenOptions
	for _, opt := range opts {
		opt(&o)
	}
	return Descriptor[E]{
		Name:     name,
		Owner:    o.owner,
		Internal: o.internal,
		Handler:  h,
		marked:   true,
	}
}

// ListenFunc is Listen for a plain function.
func ListenFunc[E domain.Event](name string, fn func(E) error, opts ...ListenOption) Descriptor[E] {
	var h Handler[E]
	if fn != nil {
		h = HandlerFunc[E](fn)
	}
	return Listen(name, h, opts...)
}
