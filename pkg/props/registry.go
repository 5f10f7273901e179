package props

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Registry records which property names each collaborator consumes, so a
// tenant's configuration can be checked for completeness before the tenant
// goes live rather than failing at first use.
type Registry struct {
	mu        sync.RWMutex
	consumers map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{consumers: make(map[string][]string)}
}

// Register declares the property names a consumer reads. Registering the
// same consumer again replaces its declaration.
func (r *Registry) Register(consumer string, names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumers[consumer] = append([]string(nil), names...)
}

// Required returns the union of all declared property names, sorted.
func (r *Registry) Required() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, names := range r.consumers {
		for _, n := range names {
			seen[n] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Validate checks that every declared property is set for the tenant.
// Returns ErrMissingProperties listing the absent names, or the first store
// error encountered.
func (r *Registry) Validate(ctx context.Context, store Store, id tenant.ID) error {
	var missing []string
	for _, name := range r.Required() {
		_, ok, err := store.Get(ctx, id, name)
		if err != nil {
			return err
		}
		if !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w for tenant %s: %v", ErrMissingProperties, id, missing)
	}
	return nil
}
