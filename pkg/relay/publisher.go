// Package relay mirrors dispatched occurrences onto a message broker so that
// processes outside the bot can observe them. It is an ordinary listener on
// the event bus and never feeds occurrences back into it.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher sends a JSON-encodable value to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close() error
}

// NATSPublisher publishes JSON-encoded values to NATS subjects.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url. Extra options are
// appended to the reconnect defaults.
func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	defaults := []nats.Option{
		nats.Name("kook-relay"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("relay: connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("relay: marshaling %s: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("relay: publishing %s: %w", subject, err)
	}
	return nil
}

// Flush waits until the server has processed every published message.
func (p *NATSPublisher) Flush() error {
	return p.conn.Flush()
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NoopPublisher is a Publisher that does nothing (used when NATS is not configured).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, subject string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}

var (
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = (*NoopPublisher)(nil)
)
