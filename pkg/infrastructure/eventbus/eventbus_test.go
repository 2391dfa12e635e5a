package eventbus

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kookbot/kook-go/pkg/domain"
)

// ---------------------------------------------------------------------------
// Test variants
// ---------------------------------------------------------------------------

type grouped interface {
	domain.Event
	group()
}

type pinged struct {
	domain.BaseEvent
	N int
}

func (pinged) EventType() domain.EventType { return "test.pinged" }
func (pinged) group()                      {}

type ponged struct {
	domain.BaseEvent
}

func (ponged) EventType() domain.EventType { return "test.ponged" }
func (ponged) group()                      {}

// impostor claims the key of pinged.
type impostor struct {
	domain.BaseEvent
}

func (impostor) EventType() domain.EventType { return "test.pinged" }

type keyless struct {
	domain.BaseEvent
}

func (keyless) EventType() domain.EventType { return "" }

type fragile struct {
	payload *int
}

func (f fragile) EventType() domain.EventType {
	_ = *f.payload
	return "test.fragile"
}
func (fragile) OccurredAt() time.Time { return time.Time{} }

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(name string) func(pinged) error {
	return func(pinged) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return nil
	}
}

func (r *recorder) trace() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func failures(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == "eventbus: handler failed" {
			out = append(out, rec)
		}
	}
	return out
}

func newPinged(n int) pinged {
	return pinged{BaseEvent: domain.NewBaseEvent(time.Now()), N: n}
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestInternalHandlersRunFirst(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, Register(m, ListenFunc("h2", rec.record("h2"))))
	require.NoError(t, Register(m, ListenFunc("h1", rec.record("h1"), Internal())))

	m.Dispatch(newPinged(1))

	assert.Equal(t, []string{"h1", "h2"}, rec.trace())
}

func TestDuplicateRegistration(t *testing.T) {
	l := NewHandlerList[pinged](nil)
	rec := &recorder{}

	require.NoError(t, l.Register(ListenFunc("h1", rec.record("h1"))))
	err := l.Register(ListenFunc("h1", rec.record("h1")))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateHandler))
	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, domain.EventType("test.pinged"), regErr.Event)
	assert.Equal(t, "h1", regErr.Handler)
	assert.Equal(t, 1, l.Len())
}

func TestFailingHandlerIsIsolated(t *testing.T) {
	logger, buf := newTestLogger()
	l := NewHandlerList[pinged](logger)

	var h2 int
	require.NoError(t, l.Register(ListenFunc("h1", func(pinged) error { return errors.New("boom") })))
	require.NoError(t, l.Register(ListenFunc("h2", func(pinged) error { h2++; return nil })))

	l.DispatchAll(newPinged(1))

	assert.Equal(t, 1, h2)
	recs := failures(t, buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "h1", recs[0]["handler"])
	assert.Equal(t, "test.pinged", recs[0]["event"])
	assert.Equal(t, "boom", recs[0]["err"])
	assert.NotEmpty(t, recs[0]["dispatch"])
}

func TestVariantWithoutKeyIsRejected(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[keyless](m)
	require.ErrorIs(t, err, ErrNoRegistry)

	err = Register(m, ListenFunc("h", func(keyless) error { return nil }))
	require.ErrorIs(t, err, ErrNoRegistry)
	assert.Empty(t, m.Types())

	l := NewHandlerList[keyless](nil)
	err = l.Register(ListenFunc("h", func(keyless) error { return nil }))
	require.ErrorIs(t, err, ErrNoRegistry)
	assert.Equal(t, 0, l.Len())

	// A key accessor that panics on the zero value counts as missing.
	err = NewHandlerList[fragile](nil).Register(ListenFunc("h", func(fragile) error { return nil }))
	require.ErrorIs(t, err, ErrNoRegistry)
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestAbstractVariantIsRejected(t *testing.T) {
	m := NewManager(nil)

	_, err := Install[grouped](m)
	require.ErrorIs(t, err, ErrAbstractEvent)
	_, err = Install[domain.Event](m)
	require.ErrorIs(t, err, ErrAbstractEvent)

	err = Register(m, ListenFunc("h", func(grouped) error { return nil }))
	require.ErrorIs(t, err, ErrAbstractEvent)

	l := NewHandlerList[grouped](nil)
	err = l.Register(ListenFunc("h", func(grouped) error { return nil }))
	require.ErrorIs(t, err, ErrAbstractEvent)
	assert.Equal(t, 0, l.Len())
}

func TestRegisterWithoutInstall(t *testing.T) {
	m := NewManager(nil)
	err := Register(m, ListenFunc("h", func(ponged) error { return nil }))
	require.ErrorIs(t, err, ErrNoRegistry)
	assert.Contains(t, err.Error(), "not installed")
}

func TestUnmarkedDescriptorIsRejected(t *testing.T) {
	l := NewHandlerList[pinged](nil)
	err := l.Register(Descriptor[pinged]{
		Name:    "raw",
		Handler: HandlerFunc[pinged](func(pinged) error { return nil }),
	})
	require.ErrorIs(t, err, ErrHandlerNotMarked)
	assert.Equal(t, 0, l.Len())
}

func TestBindingErrors(t *testing.T) {
	type service struct{ name string }
	var nilService *service
	noop := func(pinged) error { return nil }

	for _, tc := range []struct {
		name string
		d    Descriptor[pinged]
	}{
		{"nil handler", ListenFunc[pinged]("h", nil)},
		{"nil handler value", Listen[pinged]("h", nil)},
		{"empty name", ListenFunc("", noop)},
		{"owner not a pointer", ListenFunc("h", noop, WithOwner(service{}))},
		{"nil owner pointer", ListenFunc("h", noop, WithOwner(nilService))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := NewHandlerList[pinged](nil)
			err := l.Register(tc.d)
			require.ErrorIs(t, err, ErrHandlerBinding)
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestOwnerScopesHandlerNames(t *testing.T) {
	type service struct{ id int }
	a, b := &service{1}, &service{2}
	l := NewHandlerList[pinged](nil)
	noop := func(pinged) error { return nil }

	require.NoError(t, l.Register(ListenFunc("on", noop, WithOwner(a))))
	require.NoError(t, l.Register(ListenFunc("on", noop, WithOwner(b))))
	require.NoError(t, l.Register(ListenFunc("on", noop)))
	require.ErrorIs(t, l.Register(ListenFunc("on", noop, WithOwner(a), Internal())), ErrDuplicateHandler)
	assert.Equal(t, 3, l.Len())
}

type counterService struct {
	count int
}

func (s *counterService) Handle(pinged) error {
	s.count++
	return nil
}

func TestListenWithHandlerValue(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)

	svc := &counterService{}
	require.NoError(t, Register(m, Listen[pinged]("Handle", svc, WithOwner(svc))))

	m.Dispatch(newPinged(1))
	m.Dispatch(newPinged(2))
	assert.Equal(t, 2, svc.count)
}

func TestRegistrationErrorMessage(t *testing.T) {
	err := &RegistrationError{Kind: ErrDuplicateHandler, Event: "test.pinged", Handler: "h1", Detail: "*main.svc"}
	assert.Equal(t, `eventbus: register "h1" on "test.pinged": handler already registered: *main.svc`, err.Error())

	err.Detail = ""
	assert.Equal(t, `eventbus: register "h1" on "test.pinged": handler already registered`, err.Error())
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestDispatchWithoutHandlers(t *testing.T) {
	logger, buf := newTestLogger()
	l := NewHandlerList[pinged](logger)

	assert.NotPanics(t, func() { l.DispatchAll(newPinged(1)) })
	assert.Empty(t, buf.String())
}

func TestPanickingHandlerIsRecovered(t *testing.T) {
	logger, buf := newTestLogger()
	l := NewHandlerList[pinged](logger)

	var ran bool
	require.NoError(t, l.Register(ListenFunc("bad", func(pinged) error { panic("nil map") }, Internal())))
	require.NoError(t, l.Register(ListenFunc("good", func(pinged) error { ran = true; return nil })))

	assert.NotPanics(t, func() { l.DispatchAll(newPinged(1)) })
	assert.True(t, ran)

	recs := failures(t, buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "bad", recs[0]["handler"])
	assert.Equal(t, true, recs[0]["internal"])
	assert.Equal(t, "handler panicked: nil map", recs[0]["err"])
}

func TestDispatchIDSharedWithinDispatch(t *testing.T) {
	logger, buf := newTestLogger()
	l := NewHandlerList[pinged](logger)
	fail := func(pinged) error { return errors.New("no") }

	require.NoError(t, l.Register(ListenFunc("a", fail, Internal())))
	require.NoError(t, l.Register(ListenFunc("b", fail)))

	l.DispatchAll(newPinged(1))
	l.DispatchAll(newPinged(2))

	recs := failures(t, buf)
	require.Len(t, recs, 4)
	assert.Equal(t, recs[0]["dispatch"], recs[1]["dispatch"])
	assert.Equal(t, recs[2]["dispatch"], recs[3]["dispatch"])
	assert.NotEqual(t, recs[0]["dispatch"], recs[2]["dispatch"])
}

func TestHandlersReceiveTheOccurrence(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)

	var got pinged
	require.NoError(t, Register(m, ListenFunc("h", func(e pinged) error { got = e; return nil })))

	e := newPinged(42)
	m.Dispatch(e)
	assert.Equal(t, e, got)
}

func TestManagerDispatchRoutesByKey(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)
	_, err = Install[ponged](m)
	require.NoError(t, err)

	var pings, pongs int
	require.NoError(t, Register(m, ListenFunc("p", func(pinged) error { pings++; return nil })))
	require.NoError(t, Register(m, ListenFunc("q", func(ponged) error { pongs++; return nil })))

	m.DispatchAll([]domain.Event{newPinged(1), ponged{}, newPinged(2)})
	assert.Equal(t, 2, pings)
	assert.Equal(t, 1, pongs)
}

func TestManagerDropsUnroutableEvents(t *testing.T) {
	logger, buf := newTestLogger()
	m := NewManager(logger)

	assert.NotPanics(t, func() {
		m.Dispatch(nil)
		m.Dispatch(ponged{})
		m.Dispatch(keyless{})
		m.Dispatch(fragile{})
	})
	out := buf.String()
	assert.Contains(t, out, "eventbus: no registry for event")
	assert.Contains(t, out, "eventbus: event has no type key")
}

func TestManagerRejectsMismatchedVariant(t *testing.T) {
	logger, buf := newTestLogger()
	m := NewManager(logger)
	_, err := Install[pinged](m)
	require.NoError(t, err)

	var calls int
	require.NoError(t, Register(m, ListenFunc("h", func(pinged) error { calls++; return nil })))

	m.Dispatch(impostor{})
	assert.Equal(t, 0, calls)
	assert.Contains(t, buf.String(), "eventbus: event does not match registry")
}

// ---------------------------------------------------------------------------
// Locator
// ---------------------------------------------------------------------------

func TestInstallIsIdempotent(t *testing.T) {
	m := NewManager(nil)
	first, err := Install[pinged](m)
	require.NoError(t, err)
	second, err := Install[pinged](m)
	require.NoError(t, err)
	assert.Same(t, first, second)

	got, ok := Lookup[pinged](m)
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = Lookup[ponged](m)
	assert.False(t, ok)
}

func TestInstallKeyConflict(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)

	_, err = Install[impostor](m)
	require.ErrorIs(t, err, ErrKeyConflict)

	_, ok := Lookup[impostor](m)
	assert.False(t, ok)
}

func TestManagerDiagnostics(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[ponged](m)
	require.NoError(t, err)
	_, err = Install[pinged](m)
	require.NoError(t, err)

	noop := func(pinged) error { return nil }
	require.NoError(t, Register(m, ListenFunc("a", noop)))
	require.NoError(t, Register(m, ListenFunc("b", noop, Internal())))

	assert.Equal(t, []domain.EventType{"test.pinged", "test.ponged"}, m.Types())
	assert.Equal(t, 2, m.HandlerCount())
	assert.Equal(t, map[domain.EventType]int{"test.pinged": 2, "test.ponged": 0}, m.HandlerCounts())
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestRegistriesDoNotContend(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)
	_, err = Install[ponged](m)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, Register(m, ListenFunc("slow", func(pinged) error {
		close(entered)
		<-release
		return nil
	})))

	pong := make(chan struct{}, 1)
	require.NoError(t, Register(m, ListenFunc("fast", func(ponged) error {
		pong <- struct{}{}
		return nil
	})))

	done := make(chan struct{})
	go func() {
		m.Dispatch(newPinged(1))
		close(done)
	}()
	<-entered

	m.Dispatch(ponged{})
	select {
	case <-pong:
	case <-time.After(time.Second):
		t.Fatal("dispatch on another variant blocked behind a running handler")
	}

	// Registration on another variant proceeds as well.
	require.NoError(t, Register(m, ListenFunc("late", func(ponged) error { return nil })))

	close(release)
	<-done
}

func TestConcurrentRegisterAndDispatch(t *testing.T) {
	m := NewManager(nil)
	_, err := Install[pinged](m)
	require.NoError(t, err)

	var mu sync.Mutex
	calls := 0
	count := func(pinged) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(2)
		name := string(rune('a' + i))
		go func() {
			defer wg.Done()
			assert.NoError(t, Register(m, ListenFunc(name, count)))
		}()
		go func() {
			defer wg.Done()
			m.Dispatch(newPinged(i))
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, m.HandlerCount())
	calls = 0
	m.Dispatch(newPinged(99))
	assert.Equal(t, 8, calls)
}
