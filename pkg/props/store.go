package props

import (
	"context"
	"sync"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Store persists tenant-scoped properties. Implementations must keep tenants
// fully isolated from each other and apply last-write-wins on Set.
type Store interface {
	// Get retrieves a property value. The second return reports presence, so
	// an empty stored value is distinguishable from an absent one.
	Get(ctx context.Context, id tenant.ID, name string) (string, bool, error)

	// Set writes a property value, replacing any previous value.
	Set(ctx context.Context, id tenant.ID, name, value string) error

	// Delete removes a property. Deleting an absent property is a no-op.
	Delete(ctx context.Context, id tenant.ID, name string) error
}

// Memory is an in-memory Store, safe for concurrent use. Suitable for tests
// and single-process deployments.
type Memory struct {
	mu      sync.RWMutex
	tenants map[tenant.ID]map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tenants: make(map[tenant.ID]map[string]string)}
}

func (m *Memory) Get(ctx context.Context, id tenant.ID, name string) (string, bool, error) {
	if name == "" {
		return "", false, ErrEmptyName
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.tenants[id][name]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, id tenant.ID, name, value string) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.tenants[id]
	if !ok {
		props = make(map[string]string)
		m.tenants[id] = props
	}
	props[name] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, id tenant.ID, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tenants[id], name)
	return nil
}
