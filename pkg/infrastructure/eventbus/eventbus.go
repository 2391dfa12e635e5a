// Package eventbus provides the in-process, synchronous event dispatch of the
// SDK: one HandlerList per concrete event variant, and a Manager that
// locates the list owning any occurrence. It is the infrastructure adapter
// for domain.Dispatcher.
package eventbus

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/kookbot/kook-go/pkg/domain"
)

// registry is the type-erased view of a HandlerList held by the Manager.
type registry interface {
	EventType() domain.EventType
	Len() int
	dispatch(event domain.Event)
}

// Manager locates the handler registry of each event variant. It is built
// once at startup, filled with Install, and passed to producers and
// listeners explicitly.
type Manager struct {
	mu     sync.RWMutex
	lists  map[domain.EventType]registry
	logger *slog.Logger
}

// NewManager creates an empty manager. Handler failures of every registry
// it installs are reported to logger (slog.Default when nil).
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		lists:  make(map[domain.EventType]registry),
		logger: logger,
	}
}

// Install creates the registry of variant E. Installing E again returns the
// existing registry; registries are never replaced.
func Install[E domain.Event](m *Manager) (*HandlerList[E], error) {
	if isAbstract[E]() {
		return nil, fmt.Errorf("eventbus: install %s: %w", typeName[E](), ErrAbstractEvent)
	}
	key, ok := typeKey[E]()
	if !ok {
		return nil, fmt.Errorf("eventbus: install %s: %w", typeName[E](), ErrNoRegistry)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.lists[key]; ok {
		if l, ok := existing.(*HandlerList[E]); ok {
			return l, nil
		}
		return nil, fmt.Errorf("eventbus: install %s as %q: %w", typeName[E](), key, ErrKeyConflict)
	}
	l := NewHandlerList[E](m.logger)
	m.lists[key] = l
	return l, nil
}

// Lookup returns the registry installed for E.
func Lookup[E domain.Event](m *Manager) (*HandlerList[E], bool) {
	key, ok := typeKey[E]()
	if !ok {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lists[key].(*HandlerList[E])
	return l, ok
}

// Register attaches d to the registry of E. It fails with a
// *RegistrationError, storing nothing, when E is abstract, has no installed
// registry, or d is invalid or already registered.
func Register[E domain.Event](m *Manager, d Descriptor[E]) error {
	if isAbstract[E]() {
		return &RegistrationError{Kind: ErrAbstractEvent, Handler: d.Name, Detail: typeName[E]()}
	}
	key, ok := typeKey[E]()
	if !ok {
		return &RegistrationError{Kind: ErrNoRegistry, Handler: d.Name,
			Detail: typeName[E]() + ".EventType() must return a non-empty key on the zero value"}
	}
	l, ok := Lookup[E](m)
	if !ok {
		return &RegistrationError{Kind: ErrNoRegistry, Event: key, Handler: d.Name,
			Detail: typeName[E]() + " is not installed"}
	}
	return l.Register(d)
}

// Dispatch delivers event to the registry of its variant. It never fails:
// nil events and variants without a registry are dropped, and handler
// failures are logged by the registry.
func (m *Manager) Dispatch(event domain.Event) {
	if event == nil {
		return
	}
	key, ok := eventKey(event)
	if !ok {
		m.logger.Warn("eventbus: event has no type key", "type", fmt.Sprintf("%T", event))
		return
	}

	m.mu.RLock()
	r, ok := m.lists[key]
	m.mu.RUnlock()

	if !ok {
		m.logger.Debug("eventbus: no registry for event", "event", key)
		return
	}
	r.dispatch(event)
}

// DispatchAll dispatches multiple events in order.
func (m *Manager) DispatchAll(events []domain.Event) {
	for _, event := range events {
		m.Dispatch(event)
	}
}

// Types returns the installed variant keys, sorted.
func (m *Manager) Types() []domain.EventType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.EventType, 0, len(m.lists))
	for key := range m.lists {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HandlerCount returns the total number of registered handlers (for diagnostics).
func (m *Manager) HandlerCount() int {
	m.mu.RLock()
	lists := make([]registry, 0, len(m.lists))
	for _, r := range m.lists {
		lists = append(lists, r)
	}
	m.mu.RUnlock()

	count := 0
	for _, r := range lists {
		count += r.Len()
	}
	return count
}

// HandlerCounts returns the number of handlers per installed variant.
func (m *Manager) HandlerCounts() map[domain.EventType]int {
	m.mu.RLock()
	lists := make([]registry, 0, len(m.lists))
	for _, r := range m.lists {
		lists = append(lists, r)
	}
	m.mu.RUnlock()

	out := make(map[domain.EventType]int, len(lists))
	for _, r := range lists {
		out[r.EventType()] = r.Len()
	}
	return out
}

// eventKey guards against typed nil pointers whose EventType dereferences.
func eventKey(event domain.Event) (key domain.EventType, ok bool) {
	defer func() {
		if recover() != nil {
			key, ok = "", false
		}
	}()
	key = event.EventType()
	return key, key != ""
}

// Verify interface compliance at compile time.
var _ domain.Dispatcher = (*Manager)(nil)
