package systems

import (
	"reflect"
	"time"

	"github.com/matzehuels/sysgraph/pkg/errors"
	"github.com/matzehuels/sysgraph/pkg/observability"
)

// Load returns the system registered under k.Key, constructing it with k.Load
// if it is not live yet.
//
// A live instance is returned as is and k.Load is not called again. On
// construction failure Load returns the zero value and an error coded
// LOAD_FAILED wrapping the entrypoint's error; nothing is registered. A
// successful entrypoint that did not call [Emplace] itself has its result
// registered under k.Key with k.Requires as prerequisites. An entrypoint that
// did call Emplace for k.Key should return the emplaced value; a different
// non-nil result is destroyed and the emplaced one is returned.
func Load[T System](m *Manager, k Kind[T]) (T, error) {
	return load(m, k, k.Load)
}

// LoadWith is [Load] for kinds whose entrypoint takes configuration. cfg is
// only used when the system has to be constructed.
func LoadWith[T System, C any](m *Manager, k Configured[T, C], cfg C) (T, error) {
	entry := k.Kind.Load
	if k.LoadWith != nil {
		entry = func(m *Manager) (T, error) { return k.LoadWith(m, cfg) }
	}
	return load(m, k.Kind, entry)
}

func load[T System](m *Manager, k Kind[T], entry func(*Manager) (T, error)) (T, error) {
	var zero T
	if err := k.validate(); err != nil {
		return zero, err
	}
	if rec, ok := m.live[k.Key]; ok {
		return typed[T](k.Key, rec.sys)
	}
	if entry == nil {
		return zero, errors.New(errors.ErrCodeInvalidInput, "system %q has no construction entrypoint", k.Key)
	}
	for i, key := range m.loading {
		if key == k.Key {
			chain := append(append([]Key{}, m.loading[i:]...), k.Key)
			return zero, errors.New(errors.ErrCodeCycle, "dependency cycle: %s", formatChain(chain))
		}
	}

	before := m.gen
	start := time.Now()
	v, err := enter(m, k.Key, entry)
	elapsed := time.Since(start)

	rec, emplaced := m.live[k.Key]
	emplaced = emplaced && rec.gen > before

	if err == nil && !emplaced && isNil(v) {
		err = errors.New(errors.ErrCodeInternal, "entrypoint returned no system")
	}
	observability.Systems().OnLoad(string(k.Key), elapsed, err)

	if err != nil {
		if emplaced {
			if derr := m.destroy(k.Key, rec); derr != nil {
				m.logger.Warn("discard failed system", "key", k.Key, "err", derr)
			}
		}
		m.logger.Debug("load failed", "key", k.Key, "err", err)
		return zero, errors.Wrap(errors.ErrCodeLoadFailed, err, "load %s", k.Key)
	}

	if emplaced {
		if rec.staged {
			m.link(k.Key, rec)
		}
		if !isNil(v) && !sameSystem(v, rec.sys) {
			if derr := v.Destroy(); derr != nil {
				m.logger.Warn("discard unregistered result", "key", k.Key, "err", derr)
			}
		}
		m.logger.Debug("loaded system", "key", k.Key, "name", rec.sys.Name(), "took", elapsed)
		return typed[T](k.Key, rec.sys)
	}
	m.emplace(k.Key, k.Requires, v)
	m.logger.Debug("loaded system", "key", k.Key, "name", v.Name(), "took", elapsed)
	return v, nil
}

// enter runs entry with key on the in-flight stack. The key is popped even
// if entry panics.
func enter[T System](m *Manager, key Key, entry func(*Manager) (T, error)) (T, error) {
	m.loading = append(m.loading, key)
	defer func() { m.loading = m.loading[:len(m.loading)-1] }()
	return entry(m)
}

// sameSystem reports whether a and b are the same instance. Values of
// non-comparable types are assumed to be the same.
func sameSystem(a, b System) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return true
	}
	return a == b
}

func typed[T System](key Key, sys System) (T, error) {
	v, ok := sys.(T)
	if !ok {
		var zero T
		return zero, errors.New(errors.ErrCodeTypeMismatch, "system %q is a %T, not a %T", key, sys, zero)
	}
	return v, nil
}

// Find returns the live system registered under k.Key. It never constructs
// anything; a key that was never loaded, or that holds a different type, is
// reported as a miss.
func Find[T System](m *Manager, k Kind[T]) (T, bool) {
	var zero T
	rec, ok := m.live[k.Key]
	if !ok {
		return zero, false
	}
	v, ok := rec.sys.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Get is like [Find] but panics on a miss. Use it where the system is known to
// have been loaded earlier, such as inside an entrypoint after its own Load
// of the prerequisite succeeded.
func Get[T System](m *Manager, k Kind[T]) T {
	v, ok := Find(m, k)
	if !ok {
		panic(errors.New(errors.ErrCodeNotFound, "system %q is not loaded", k.Key))
	}
	return v
}

// Emplace registers v under k.Key with k.Requires as prerequisites and
// returns it. A live instance under the same key is destroyed first.
//
// Entrypoints call Emplace once they have everything they need; the
// registration is linked into the dependency graph when the surrounding
// [Load] succeeds and discarded if it fails.
//
// Recorded edges are additive: replacing a live instance adds k.Requires to
// the prerequisites already recorded for k.Key and never removes any.
//
// Emplace panics if k has an invalid key or requires itself; [Load] reports
// the same conditions as errors.
func Emplace[T System](m *Manager, k Kind[T], v T) T {
	if err := k.validate(); err != nil {
		panic(err)
	}
	m.emplace(k.Key, k.Requires, v)
	return v
}
