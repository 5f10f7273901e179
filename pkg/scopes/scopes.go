// Package scopes provides helpers for the space-separated scope strings
// carried in access-token claims. Scopes are hierarchical ("admin.users")
// and support trailing wildcards ("admin.*", "*").
package scopes

import (
	"slices"
	"strings"
)

const (
	// Separator separates multiple scopes in a claim string.
	Separator = " "

	// Wildcard matches every scope.
	Wildcard = "*"

	// Delimiter separates scope hierarchy levels (e.g. "admin.read").
	Delimiter = "."
)

// Parse converts a space-separated scope string into a slice.
// Trims whitespace and drops empty entries; returns nil for empty input.
func Parse(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, Separator)
	out := make([]string, 0, len(parts))
	for i := range parts {
		if parts[i] = strings.TrimSpace(parts[i]); parts[i] != "" {
			out = append(out, parts[i])
		}
	}
	return out
}

// Join converts a scope slice back to a space-separated claim string.
func Join(scopes []string) string {
	if len(scopes) == 0 {
		return ""
	}
	return strings.Join(scopes, Separator)
}

// Matches reports whether a single scope is matched by pattern.
// A pattern matches on exact equality, as the global wildcard, or as a
// namespace wildcard: "admin.*" matches any scope under "admin.".
func Matches(scope, pattern string) bool {
	if scope == pattern || pattern == Wildcard {
		return true
	}

	if strings.HasSuffix(pattern, Wildcard) {
		prefix := strings.TrimSuffix(pattern, Wildcard)
		prefix = strings.TrimSuffix(prefix, Delimiter)
		return strings.HasPrefix(scope, prefix+Delimiter)
	}

	return false
}

// Has reports whether the granted scopes cover a specific scope.
func Has(granted []string, scope string) bool {
	for _, g := range granted {
		if Matches(scope, g) {
			return true
		}
	}
	return false
}

// HasAll reports whether the granted scopes cover every required scope.
// An empty requirement is always satisfied; a global wildcard grant
// satisfies everything.
func HasAll(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(granted) == 0 {
		return false
	}
	if slices.Contains(granted, Wildcard) {
		return true
	}

	for _, req := range required {
		if !Has(granted, req) {
			return false
		}
	}
	return true
}
