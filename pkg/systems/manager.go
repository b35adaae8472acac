package systems

import (
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sysgraph/pkg/digraph"
	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/observability"
)

// Manager owns live systems and the dependency graph derived from their
// declarations.
//
// The zero value is not usable - use [New] to create a valid Manager.
type Manager struct {
	graph   *digraph.Graph[Key]
	live    map[Key]*record
	loading []Key
	gen     uint64
	logger  *log.Logger
}

type record struct {
	sys      System
	requires []Key
	gen      uint64
	// staged records were emplaced by their own entrypoint and are not yet
	// linked into the graph.
	staged bool
}

// Option configures a [Manager].
type Option func(*Manager)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option { return func(m *Manager) { m.logger = l } }

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		graph:  digraph.New[Key](),
		live:   make(map[Key]*record),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lookup returns the live system registered under key.
func (m *Manager) Lookup(key Key) (System, bool) {
	rec, ok := m.live[key]
	if !ok {
		return nil, false
	}
	return rec.sys, true
}

// Contains reports whether a live system is registered under key.
func (m *Manager) Contains(key Key) bool {
	_, ok := m.live[key]
	return ok
}

// Len returns the number of live systems.
func (m *Manager) Len() int { return len(m.live) }

// Keys returns the keys of live systems in forward dependency order.
func (m *Manager) Keys() []Key {
	keys := make([]Key, 0, len(m.live))
	m.ForEach(func(k Key, _ System) { keys = append(keys, k) })
	return keys
}

// ForEach calls visit for every live system, prerequisites first.
func (m *Manager) ForEach(visit func(Key, System)) {
	m.each(digraph.TopDown, visit)
}

// ReverseForEach calls visit for every live system, dependents first.
func (m *Manager) ReverseForEach(visit func(Key, System)) {
	m.each(digraph.BottomUp, visit)
}

func (m *Manager) each(dir digraph.Direction, visit func(Key, System)) {
	for _, k := range m.order(dir) {
		if rec, ok := m.live[k]; ok && !rec.staged {
			visit(k, rec.sys)
		}
	}
}

// order returns every vertex in walk order for dir. Vertices held back by a
// cycle follow in registration order (reversed for [digraph.BottomUp]).
func (m *Manager) order(dir digraph.Direction) []Key {
	out, err := digraph.Order(m.graph, dir)
	if err == nil {
		return out
	}
	seen := make(map[Key]bool, len(out))
	for _, k := range out {
		seen[k] = true
	}
	rest := m.graph.Vertices()
	if dir == digraph.BottomUp {
		slices.Reverse(rest)
	}
	for _, k := range rest {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// emplace stores sys under key, destroying any previous instance first.
func (m *Manager) emplace(key Key, requires []Key, sys System) {
	replaced := false
	if old, ok := m.live[key]; ok {
		replaced = true
		if err := m.destroy(key, old); err != nil {
			m.logger.Warn("destroy replaced system", "key", key, "err", err)
		}
	}

	m.gen++
	rec := &record{sys: sys, requires: slices.Clone(requires), gen: m.gen}
	m.live[key] = rec
	if slices.Contains(m.loading, key) {
		rec.staged = true
	} else {
		m.link(key, rec)
	}

	observability.Systems().OnEmplace(string(key), replaced)
	if replaced {
		m.logger.Debug("replaced system", "key", key, "name", sys.Name())
	} else {
		m.logger.Debug("registered system", "key", key, "name", sys.Name())
	}
}

func (m *Manager) link(key Key, rec *record) {
	rec.staged = false
	if len(rec.requires) == 0 {
		m.graph.Ensure(key)
		return
	}
	// Kinds are validated before they reach here, so a self loop is impossible.
	_ = m.graph.AddEdgesFrom(rec.requires, key)
}

// destroy calls Destroy on rec and removes key from the live set.
func (m *Manager) destroy(key Key, rec *record) error {
	start := time.Now()
	err := rec.sys.Destroy()
	elapsed := time.Since(start)
	delete(m.live, key)
	observability.Systems().OnDestroy(string(key), elapsed, err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTeardown, err, "destroy %s", key)
	}
	m.logger.Debug("destroyed system", "key", key, "name", rec.sys.Name(), "took", elapsed)
	return nil
}

// TeardownAll destroys every live system exactly once, dependents before
// their prerequisites, then clears the Manager. Errors returned by Destroy do
// not stop the teardown; they are joined into the result.
//
// Calling TeardownAll on an empty Manager is a no-op.
func (m *Manager) TeardownAll() error {
	if len(m.live) == 0 && m.graph.Len() == 0 {
		return nil
	}

	var errs []error
	visit := func(k Key) {
		rec, ok := m.live[k]
		if !ok {
			return
		}
		if err := m.destroy(k, rec); err != nil {
			m.logger.Error("teardown", "key", k, "err", err)
			errs = append(errs, err)
		}
	}

	if n := digraph.Reverse(m.graph, visit); n < m.graph.Len() {
		m.logger.Warn("dependency cycle blocks teardown order; destroying the rest in reverse registration order",
			"cycle", formatChain(digraph.FindCycle(m.graph)))
		rest := m.graph.Vertices()
		slices.Reverse(rest)
		for _, k := range rest {
			visit(k)
		}
	}
	// Staged systems have no vertex yet.
	for k, rec := range m.live {
		if err := m.destroy(k, rec); err != nil {
			errs = append(errs, err)
		}
	}

	m.graph = digraph.New[Key]()
	m.live = make(map[Key]*record)
	return stderrors.Join(errs...)
}

// Close tears down every live system. It is the deferred counterpart of [New].
func (m *Manager) Close() error { return m.TeardownAll() }

func formatChain(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, " -> ")
}
