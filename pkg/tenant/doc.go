// Package tenant provides tenant identification and request-scoped tenant
// context for multi-tenant applications.
//
// The package is built around three core concepts:
//
// 1. Resolver - a pure function mapping a request host to a tenant ID
// 2. Context helpers - scoped activation of a tenant ID for one request
// 3. Middleware - orchestrates resolution and context propagation over HTTP
//
// Resolution follows the subdomain convention "<tenant-id>.<base-domain>".
// The left-most host label is case-folded and validated as a DNS label; a
// configurable set of reserved labels (back-office, marketing site, API
// gateway) maps to a fixed system tenant instead of a customer tenant.
// Resolution performs no I/O, so it is deterministic, trivially testable,
// and safe to call on every request without caching.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantkit/pkg/tenant"
//
//	resolver := tenant.NewResolver(".example.com",
//		tenant.WithReservedLabels("admin", "www"),
//		tenant.WithSystemID("system"),
//	)
//
//	router.Use(tenant.Middleware(resolver))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		id, err := tenant.CurrentID(r.Context())
//		if err != nil {
//			// no tenant active for this request
//			return
//		}
//		// use id
//	}
//
// # Context semantics
//
// The active tenant rides the request's context.Context. Installing a tenant
// derives a new context; the parent is never mutated, so a tenant installed
// for one request can never leak into another even when the runtime reuses
// OS threads or goroutines. RunWithTenant offers the same guarantee as a
// scoped callback for non-HTTP work (queue consumers, schedulers).
//
// # Error Handling
//
// The package defines specific errors for the failure scenarios callers are
// expected to branch on:
//
//   - ErrTenantNotFound: the host carries no resolvable tenant label
//   - ErrInvalidIdentifier: the label is present but syntactically invalid
//   - ErrNoTenantInContext: tenant-scoped work attempted outside a request scope
//
// The middleware maps these onto HTTP status codes via a configurable error
// handler.
package tenant
