package provisioner

import (
	"sync"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// State is a phase of the per-tenant provisioning state machine.
type State string

const (
	// StateNone means no provisioning attempt is known for the tenant.
	StateNone State = ""
	// StateRequested means an attempt has been accepted but not started.
	StateRequested State = "requested"
	// StateStarting means the database instance is being launched.
	StateStarting State = "starting"
	// StateReadinessPolling means the instance started and is being probed.
	StateReadinessPolling State = "readiness_polling"
	// StateReady is the success terminal state.
	StateReady State = "ready"
	// StateFailed is the failure terminal state; the attempt's resources have
	// been released and a new attempt may start from Requested.
	StateFailed State = "failed"
)

// stateTracker records the current state per tenant. Each provisioner owns
// one; the mutex only guards the map, never provisioning work itself.
type stateTracker struct {
	mu     sync.RWMutex
	states map[tenant.ID]State
}

func newStateTracker() *stateTracker {
	return &stateTracker{states: make(map[tenant.ID]State)}
}

func (t *stateTracker) set(id tenant.ID, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[id] = s
}

func (t *stateTracker) get(id tenant.ID) State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[id]
}

func (t *stateTracker) clear(id tenant.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, id)
}
