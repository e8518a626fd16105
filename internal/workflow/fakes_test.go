package workflow

import (
	"sync"
	"testing"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/markup"
	"github.com/agentx-labs/addonctl/internal/testutil"
)

type fakeEntity struct {
	name         string
	version      string
	category     addon.Category
	disabled     bool
	uninstalled  bool
	setErr       error
	uninstallErr error
}

func (e *fakeEntity) Name() string             { return e.name }
func (e *fakeEntity) Version() string          { return e.version }
func (e *fakeEntity) Category() addon.Category { return e.category }
func (e *fakeEntity) Disabled() bool           { return e.disabled }

func (e *fakeEntity) SetDisabled(disabled bool) error {
	if e.setErr != nil {
		return e.setErr
	}
	e.disabled = disabled
	return nil
}

func (e *fakeEntity) Uninstall() error {
	if e.uninstallErr != nil {
		return e.uninstallErr
	}
	e.uninstalled = true
	return nil
}

func ext(name, version string, disabled bool) *fakeEntity {
	return &fakeEntity{name: name, version: version, category: addon.Extension, disabled: disabled}
}

// fakeManager answers AddonsByCategory synchronously, or queues the answer
// until flush when deferCalls is set.
type fakeManager struct {
	mu         sync.Mutex
	entities   map[addon.Category][]addon.Entity
	err        error
	deferCalls bool
	pending    []func()
	calls      []addon.Category
}

func newFakeManager(entities ...*fakeEntity) *fakeManager {
	m := &fakeManager{entities: make(map[addon.Category][]addon.Entity)}
	for _, e := range entities {
		m.entities[e.category] = append(m.entities[e.category], e)
	}
	return m
}

func (m *fakeManager) AddonsByCategory(c addon.Category, fn func([]addon.Entity, error)) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	entities := append([]addon.Entity(nil), m.entities[c]...)
	err := m.err
	call := func() { fn(entities, err) }
	if m.deferCalls {
		m.pending = append(m.pending, call)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	call()
}

func (m *fakeManager) flush() {
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return
		}
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()
		next()
	}
}

type fakeSearch struct {
	query string
	max   int
	cb    addon.SearchCallback
}

// fakeRepo records searches; tests deliver results through the recorded callbacks.
type fakeRepo struct {
	searching bool
	cancels   int
	searches  []fakeSearch
}

func (r *fakeRepo) IsSearching() bool { return r.searching }

func (r *fakeRepo) CancelSearch() {
	r.cancels++
	r.searching = false
}

func (r *fakeRepo) SearchAddons(query string, maxResults int, cb addon.SearchCallback) {
	r.searching = true
	r.searches = append(r.searches, fakeSearch{query: query, max: maxResults, cb: cb})
}

func (r *fakeRepo) last(t *testing.T) fakeSearch {
	t.Helper()
	if len(r.searches) == 0 {
		t.Fatal("no search was started")
	}
	return r.searches[len(r.searches)-1]
}

func (r *fakeRepo) succeed(t *testing.T, results ...addon.SearchResult) {
	t.Helper()
	s := r.last(t)
	r.searching = false
	s.cb.SearchSucceeded(results, len(results))
}

type fakeHandle struct {
	id        string
	listeners []addon.InstallListener
	installs  int
	newSeen   int
}

func (h *fakeHandle) ID() string { return h.id }

func (h *fakeHandle) AddListener(l addon.InstallListener) {
	h.listeners = append(h.listeners, l)
	l.OnNewInstall(h)
}

func (h *fakeHandle) Install() { h.installs++ }
func (h *fakeHandle) Cancel()  {}

func (h *fakeHandle) each(fn func(addon.InstallListener)) {
	for _, l := range h.listeners {
		fn(l)
	}
}

func result(name, version string) (addon.SearchResult, *fakeHandle) {
	h := &fakeHandle{id: "h-" + name}
	return addon.SearchResult{Name: name, Version: version, Install: h}, h
}

func newTestService(t *testing.T, m *fakeManager, r *fakeRepo) *Service {
	t.Helper()
	return New(m, r, Options{Logger: testutil.NewTestLogger(t)})
}

// text waits for nothing: it requires o to be resolved and returns its plain rendering.
func text(t *testing.T, o deferred.Outcome) string {
	t.Helper()
	if s, ok := o.Text(); ok {
		return markup.Plain().Render(s)
	}
	v, ok := o.Result().Value()
	if !ok {
		t.Fatal("outcome is still pending")
	}
	return markup.Plain().Render(v)
}

func requirePending(t *testing.T, o deferred.Outcome) {
	t.Helper()
	if !o.IsPending() {
		t.Fatal("outcome is immediate, want pending")
	}
	if o.Result().Resolved() {
		t.Fatal("outcome resolved too early")
	}
}
