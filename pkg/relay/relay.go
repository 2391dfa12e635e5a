package relay

import (
	"context"
	"strings"
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/events"
	"github.com/kookbot/kook-go/pkg/infrastructure/eventbus"
)

// Envelope is the wire form of one relayed occurrence.
type Envelope struct {
	Type       domain.EventType `json:"type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Data       domain.Event     `json:"data"`
}

// Relay publishes every occurrence it receives to <prefix>.<event type>.
type Relay struct {
	pub    Publisher
	prefix string
}

// New creates a relay publishing through pub. The prefix is trimmed of dots.
func New(pub Publisher, prefix string) *Relay {
	if pub == nil {
		pub = &NoopPublisher{}
	}
	return &Relay{pub: pub, prefix: strings.Trim(prefix, ".")}
}

// Subject returns the subject an occurrence of type t is published on.
func (r *Relay) Subject(t domain.EventType) string {
	if r.prefix == "" {
		return string(t)
	}
	return r.prefix + "." + string(t)
}

// Publish sends event wrapped in an Envelope.
func (r *Relay) Publish(ctx context.Context, event domain.Event) error {
	t := event.EventType()
	return r.pub.Publish(ctx, r.Subject(t), Envelope{
		Type:       t,
		OccurredAt: event.OccurredAt(),
		Data:       event,
	})
}

// Close closes the underlying publisher.
func (r *Relay) Close() error {
	return r.pub.Close()
}

// HandlerName is the name the relay registers under.
const HandlerName = "relay.publish"

// Forward registers r as a normal-phase listener of variant E on m. Publish
// failures surface as handler failures and are logged by the bus.
func Forward[E domain.Event](m *eventbus.Manager, r *Relay) error {
	return eventbus.Register(m, eventbus.ListenFunc(HandlerName, func(e E) error {
		return r.Publish(context.Background(), e)
	}, eventbus.WithOwner(r)))
}

// ForwardAll registers r on every variant of the occurrence catalog. The
// catalog must already be installed on m.
func ForwardAll(m *eventbus.Manager, r *Relay) error {
	return events.ListenAll(m, HandlerName, func(e domain.Event) error {
		return r.Publish(context.Background(), e)
	}, eventbus.WithOwner(r))
}
