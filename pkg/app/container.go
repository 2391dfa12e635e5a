// Package app wires the SDK together for binaries: it owns the event bus,
// the occurrence catalog, the optional NATS relay and the card templates,
// and provides application services that sit on top of the domain.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kookbot/kook-go/pkg/config"
	"github.com/kookbot/kook-go/pkg/domain/message/card"
	"github.com/kookbot/kook-go/pkg/events"
	"github.com/kookbot/kook-go/pkg/infrastructure/eventbus"
	"github.com/kookbot/kook-go/pkg/logger"
	"github.com/kookbot/kook-go/pkg/observability"
	"github.com/kookbot/kook-go/pkg/relay"
)

// ---------------------------------------------------------------------------
// Application container: dependency injection root
// ---------------------------------------------------------------------------

// Container holds the process-wide services. It is the single place where
// the event bus is created; everything else receives it from here.
type Container struct {
	Config config.Config
	Logger *slog.Logger

	// Event dispatch
	Bus     *eventbus.Manager
	Audit   *Audit
	Metrics *observability.Metrics
	Relay   *relay.Relay

	// Card templates
	Cards *card.Registry
}

// PublisherFactory opens the relay publisher for a NATS URL.
type PublisherFactory func(url string) (relay.Publisher, error)

func natsPublisher(url string) (relay.Publisher, error) {
	return relay.NewNATSPublisher(url)
}

// NewContainer creates a fully wired container. The catalog is installed and
// the audit and metrics listeners attached; the relay is attached when
// configured and card templates are loaded when a template directory is set.
func NewContainer(cfg config.Config, log *slog.Logger) (*Container, error) {
	return newContainer(cfg, log, natsPublisher)
}

func newContainer(cfg config.Config, log *slog.Logger, open PublisherFactory) (*Container, error) {
	if log == nil {
		log = logger.Default()
	}
	bus := eventbus.NewManager(logger.Component(log, "eventbus"))
	if err := events.Install(bus); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: log,
		Bus:    bus,
		Audit:  NewAudit(),
		Cards:  card.NewRegistry(),
	}
	if err := c.Audit.Attach(bus); err != nil {
		return nil, fmt.Errorf("app: attach audit: %w", err)
	}

	metrics, err := observability.NewMetrics(nil)
	if err != nil {
		return nil, err
	}
	if err := metrics.Attach(bus); err != nil {
		return nil, fmt.Errorf("app: attach metrics: %w", err)
	}
	c.Metrics = metrics

	if cfg.RelayEnabled() {
		pub, err := open(cfg.Relay.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("app: open relay: %w", err)
		}
		c.Relay = relay.New(pub, cfg.Relay.SubjectPrefix)
		if err := relay.ForwardAll(bus, c.Relay); err != nil {
			_ = c.Relay.Close()
			return nil, fmt.Errorf("app: attach relay: %w", err)
		}
		log.Info("app: relay enabled", "url", cfg.Relay.NATSURL, "prefix", cfg.Relay.SubjectPrefix)
	}

	if dir := cfg.Cards.TemplateDir; dir != "" {
		n, errs := c.Cards.Load(dir)
		for _, err := range errs {
			log.Warn("app: card template skipped", "dir", dir, "err", err)
		}
		log.Debug("app: card templates loaded", "dir", dir, "count", n)
	}

	return c, nil
}

// Close releases the relay connection.
func (c *Container) Close() error {
	var errs []error
	if c.Relay != nil {
		errs = append(errs, c.Relay.Close())
	}
	return errors.Join(errs...)
}
