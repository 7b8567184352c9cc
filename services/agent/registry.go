package agent

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// heartbeatLogInterval bounds how often a known building's re-announcement
// is logged. This is a logging throttle only; last-seen bookkeeping happens
// on every announcement.
const heartbeatLogInterval = time.Minute

type registryEntry struct {
	lastSeen     time.Time
	heartbeatLog *rate.Sometimes
}

// Registry is an agent's locally learned view of the running buildings.
// It is never authoritative: entries are added on announcement, refreshed
// on re-announcement, and never expired — a crashed building stays listed
// until the agent restarts.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		logger:  logger,
	}
}

// Observe records an announcement and reports whether the building was
// newly discovered.
func (r *Registry) Observe(building string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, known := r.entries[building]
	if !known {
		r.entries[building] = &registryEntry{
			lastSeen:     time.Now(),
			heartbeatLog: &rate.Sometimes{Interval: heartbeatLogInterval},
		}
		r.logger.Info("discovered building", zap.String("building", building))
		return true
	}

	entry.lastSeen = time.Now()
	entry.heartbeatLog.Do(func() {
		r.logger.Debug("heartbeat from building", zap.String("building", building))
	})
	return false
}

// Known reports whether a building has ever announced itself.
func (r *Registry) Known(building string) bool {
	if building == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[building]
	return ok
}

// LastSeen returns when the building last announced itself.
func (r *Registry) LastSeen(building string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[building]
	if !ok {
		return time.Time{}, false
	}
	return entry.lastSeen, true
}

// Names returns the known building names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
