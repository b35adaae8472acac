// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about system construction, registration and teardown.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the lifecycle manager free of observability frameworks
//   - Allows different backends (see the prom subpackage for Prometheus)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSystemHooks(prom.New(prometheus.DefaultRegisterer, "sysgraph"))
//	    // ... run application
//	}
//
// The lifecycle manager calls hooks to emit events:
//
//	observability.Systems().OnLoad(key, duration, err)
//	observability.Systems().OnDestroy(key, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// System Hooks
// =============================================================================

// SystemHooks receives events from the lifecycle manager.
//
// Hooks are invoked synchronously on the goroutine driving the manager, so
// implementations must return quickly.
type SystemHooks interface {
	// OnLoad records the outcome of a construction entrypoint. It is not
	// called for memoized loads that return an existing instance.
	OnLoad(key string, duration time.Duration, err error)

	// OnEmplace records a registration. replaced is true when an existing
	// instance under the same key was destroyed to make room.
	OnEmplace(key string, replaced bool)

	// OnDestroy records one teardown call.
	OnDestroy(key string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSystemHooks is a no-op implementation of SystemHooks.
type NoopSystemHooks struct{}

func (NoopSystemHooks) OnLoad(string, time.Duration, error)    {}
func (NoopSystemHooks) OnEmplace(string, bool)                 {}
func (NoopSystemHooks) OnDestroy(string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	systemHooks SystemHooks = NoopSystemHooks{}
	hooksMu     sync.RWMutex
)

// SetSystemHooks registers custom system hooks.
// This should be called once at application startup before any systems load.
// A nil argument is ignored.
func SetSystemHooks(h SystemHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		systemHooks = h
	}
}

// Systems returns the registered system hooks.
func Systems() SystemHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return systemHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	systemHooks = NoopSystemHooks{}
}
