package app

import (
	"sort"
	"sync"
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/events"
	"github.com/kookbot/kook-go/pkg/infrastructure/eventbus"
)

// ---------------------------------------------------------------------------
// Audit: internal-phase occurrence counters
// ---------------------------------------------------------------------------

// AuditHandler is the name the audit listener registers under.
const AuditHandler = "app.audit"

// AuditEntry summarizes the occurrences seen for one variant.
type AuditEntry struct {
	Type     domain.EventType
	Count    int
	LastSeen time.Time
}

// Audit counts dispatched occurrences per variant. It listens in the
// internal phase, so its counters already include an occurrence when normal
// handlers of the same dispatch run.
type Audit struct {
	mu      sync.Mutex
	entries map[domain.EventType]*AuditEntry
}

func NewAudit() *Audit {
	return &Audit{entries: make(map[domain.EventType]*AuditEntry)}
}

// Attach registers the audit listener on every catalog variant.
func (a *Audit) Attach(m *eventbus.Manager) error {
	return events.ListenAll(m, AuditHandler, a.record, eventbus.WithOwner(a), eventbus.Internal())
}

func (a *Audit) record(e domain.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := e.EventType()
	entry, ok := a.entries[t]
	if !ok {
		entry = &AuditEntry{Type: t}
		a.entries[t] = entry
	}
	entry.Count++
	if at := e.OccurredAt(); at.After(entry.LastSeen) {
		entry.LastSeen = at
	}
	return nil
}

// Count returns how many occurrences of t were dispatched.
func (a *Audit) Count(t domain.EventType) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if entry, ok := a.entries[t]; ok {
		return entry.Count
	}
	return 0
}

// Total returns the number of occurrences dispatched across all variants.
func (a *Audit) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, entry := range a.entries {
		total += entry.Count
	}
	return total
}

// Entries returns a copy of every entry, sorted by type.
func (a *Audit) Entries() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]AuditEntry, 0, len(a.entries))
	for _, entry := range a.entries {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
