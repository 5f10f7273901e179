package tenant

import (
	"fmt"
	"strings"
)

// DefaultSystemID is the tenant every reserved label resolves to unless
// overridden with WithSystemID.
const DefaultSystemID = ID("system")

// Resolver maps an inbound request host to a tenant identifier following the
// "<tenant-id>.<base-domain>" convention. Resolution is a pure function of
// the host string and the resolver configuration: no I/O, no side effects.
type Resolver struct {
	suffix   string        // base-domain suffix to strip, e.g. ".example.com"
	reserved map[string]ID // reserved label -> fixed tenant id
	systemID ID
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSystemID sets the tenant ID reserved labels resolve to.
func WithSystemID(id ID) ResolverOption {
	return func(r *Resolver) {
		if !id.IsZero() {
			r.systemID = id
		}
	}
}

// WithReservedLabels registers host labels that resolve to the system tenant
// instead of a customer tenant (e.g. "admin", "www", "api"). Labels are
// case-folded on registration.
func WithReservedLabels(labels ...string) ResolverOption {
	return func(r *Resolver) {
		for _, l := range labels {
			l = strings.ToLower(strings.TrimSpace(l))
			if l != "" {
				r.reserved[l] = ""
			}
		}
	}
}

// WithReservedLabel registers a single reserved label with an explicit target
// tenant, for deployments where different reserved hosts map to different
// well-known tenants.
func WithReservedLabel(label string, target ID) ResolverOption {
	return func(r *Resolver) {
		label = strings.ToLower(strings.TrimSpace(label))
		if label != "" {
			r.reserved[label] = target
		}
	}
}

// NewResolver creates a resolver for the given base-domain suffix
// (e.g. ".example.com"). An empty suffix accepts any base domain and treats
// the left-most label of a three-or-more-label host as the tenant.
func NewResolver(suffix string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		suffix:   strings.ToLower(suffix),
		reserved: make(map[string]ID),
		systemID: DefaultSystemID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve extracts the tenant identifier from a host header value.
// Returns ErrTenantNotFound when the host has no separable leading label or
// the label is not a syntactically valid tenant identifier.
func (r *Resolver) Resolve(host string) (ID, error) {
	req, err := r.ResolveRequest(host)
	if err != nil {
		return "", err
	}
	return req.ID, nil
}

// ResolveRequest is Resolve with the full resolution detail: the raw host and
// whether the label matched a reserved name.
func (r *Resolver) ResolveRequest(host string) (Request, error) {
	raw := host

	// Strip port if present.
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx:], "]") {
		host = host[:idx]
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	label, rest, found := strings.Cut(host, ".")
	if !found || label == "" {
		return Request{}, fmt.Errorf("%w: host %q has no tenant label", ErrTenantNotFound, raw)
	}

	if target, ok := r.reserved[label]; ok {
		id := target
		if id.IsZero() {
			id = r.systemID
		}
		return Request{RawHost: raw, ID: id, Reserved: true}, nil
	}

	// With a configured suffix the remainder must be exactly the base domain;
	// otherwise a bare two-label host like "example.com" would yield "example"
	// as a tenant.
	if r.suffix != "" {
		if "."+rest != r.suffix {
			return Request{}, fmt.Errorf("%w: host %q is not under the tenant domain", ErrTenantNotFound, raw)
		}
	} else if strings.Count(rest, ".") < 1 {
		return Request{}, fmt.Errorf("%w: host %q has no tenant label", ErrTenantNotFound, raw)
	}

	id, err := ParseID(label)
	if err != nil {
		return Request{}, fmt.Errorf("%w: label %q", ErrTenantNotFound, label)
	}

	return Request{RawHost: raw, ID: id}, nil
}
