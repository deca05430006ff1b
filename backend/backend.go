// Package backend holds the registry of glcore.Backend implementations.
//
// Backends register a factory under a well-known name, typically from an
// init function; hosts pick one explicitly with Get or let Default choose
// by priority. Device-backed backends that need a GPU handle (like
// backend/wgpu) are registered by the host once the device exists.
package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/glbridge/glcore"
)

// Well-known backend names.
const (
	// NameWGPU is the HAL-backed GPU backend (backend/wgpu).
	NameWGPU = "wgpu"

	// NameTrace is the command-tracing backend (backend/trace).
	NameTrace = "trace"
)

// ErrBackendNotAvailable is returned when no requested backend is registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Factory creates a new backend instance.
type Factory func() glcore.Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Selection order for Default: real GPU first, trace as fallback.
	priority = []string{NameWGPU, NameTrace}
)

// Register adds a backend factory under name, replacing any previous
// registration. Typically called from init in backend packages, or by the
// host for device-backed backends.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry. Useful for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a backend is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get returns a new instance of the named backend, or an error when none is
// registered under that name.
func Get(name string) (glcore.Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, ErrBackendNotAvailable
	}
	return factory(), nil
}

// Default returns the best available backend by priority, falling back to
// any registered backend, or an error when the registry is empty.
func Default() (glcore.Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := factories[name]; ok {
			if b := factory(); b != nil {
				return b, nil
			}
		}
	}
	for _, factory := range factories {
		if b := factory(); b != nil {
			return b, nil
		}
	}
	return nil, ErrBackendNotAvailable
}
