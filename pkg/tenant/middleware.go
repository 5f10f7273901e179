package tenant

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware that resolves the tenant from the
// request's Host header and installs it into the request context for the
// lifetime of the request. The derived context is discarded when the handler
// returns, so the tenant never survives into a subsequent request even when
// the server reuses connections or goroutines.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			req, err := resolver.ResolveRequest(r.Host)
			if err != nil {
				if cfg.logger != nil {
					cfg.logger.DebugContext(r.Context(), "tenant resolution failed",
						slog.String("host", r.Host), slog.Any("error", err))
				}
				cfg.errorHandler(w, r, err)
				return
			}

			ctx := WithTenant(r.Context(), req.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant creates middleware that ensures a tenant is active in the
// context. Mount it behind Middleware on routes that must never run outside
// a tenant scope.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
