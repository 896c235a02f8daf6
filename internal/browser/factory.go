package browser

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/surajroboto/cookie-trac/internal/logging"
)

// BackendConstructor constructs a Driver given the config and logger.
type BackendConstructor func(cfg Config, logger logging.Logger) (Driver, error)

var (
	mu       sync.RWMutex
	backends = map[string]BackendConstructor{}
)

// Register registers a named backend constructor. Name is lower-cased
// internally. Registering the same name again overwrites the previous
// constructor.
func Register(name Backend, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	backends[strings.ToLower(string(name))] = ctor
}

// New constructs the configured Driver backend. It returns an error if the
// named backend has not been registered.
func New(cfg Config, logger logging.Logger) (Driver, error) {
	backend := strings.ToLower(strings.TrimSpace(string(cfg.Backend)))
	if backend == "" {
		backend = string(BackendChromedp)
	}

	mu.RLock()
	ctor, ok := backends[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("browser backend %q not registered: available backends=%v", backend, ListBackends())
	}

	d, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct browser backend %q: %w", backend, err)
	}
	if d == nil {
		return nil, errors.New("browser constructor returned nil")
	}
	return d, nil
}

// ListBackends returns the list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	return out
}
