// Package observability exports OpenTelemetry metrics about event dispatch.
//
// Metrics listens on the bus like any other handler; it uses whatever
// MeterProvider the process installed (a no-op until one is set).
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/events"
	"github.com/kookbot/kook-go/pkg/infrastructure/eventbus"
)

// ScopeName is the instrumentation scope of the SDK meter.
const ScopeName = "github.com/kookbot/kook-go"

// HandlerName is the name the metrics listener registers under.
const HandlerName = "observability.metrics"

// Metrics records one counter increment per dispatched occurrence.
type Metrics struct {
	dispatched metric.Int64Counter
}

// NewMetrics creates the instruments on meter. A nil meter uses the global
// MeterProvider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(ScopeName)
	}
	dispatched, err := meter.Int64Counter("kook.events.dispatched",
		metric.WithDescription("Number of events dispatched, by event type"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create counter: %w", err)
	}
	return &Metrics{dispatched: dispatched}, nil
}

// Attach registers the listener on every catalog variant, in the internal
// phase so that counts do not depend on normal handlers.
func (m *Metrics) Attach(bus *eventbus.Manager) error {
	return events.ListenAll(bus, HandlerName, m.record, eventbus.WithOwner(m), eventbus.Internal())
}

func (m *Metrics) record(e domain.Event) error {
	m.dispatched.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("event.type", e.EventType().String())))
	return nil
}
