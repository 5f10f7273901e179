package tenant

import "strings"

// ID is an opaque tenant identifier extracted once per request.
// Two IDs are equal iff their string representations are byte-equal;
// the resolver case-folds the source host label before constructing one,
// so no further normalization is ever applied.
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// maxLabelLen is the DNS label length limit (RFC 1035).
const maxLabelLen = 63

// ParseID validates s as a tenant identifier and returns it as an ID.
// Valid identifiers are non-empty lowercase DNS labels: letters, digits and
// hyphens, no leading or trailing hyphen, at most 63 bytes. Input is
// case-folded before validation so "Acme" and "acme" parse to the same ID.
func ParseID(s string) (ID, error) {
	s = strings.ToLower(s)
	if !isValidLabel(s) {
		return "", ErrInvalidIdentifier
	}
	return ID(s), nil
}

func isValidLabel(s string) bool {
	if len(s) == 0 || len(s) > maxLabelLen {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

// Request captures the outcome of resolving one inbound host.
// It is a transient value: constructed by the resolver, consumed by the
// middleware, never stored beyond the request.
type Request struct {
	RawHost  string // host header as received, port included
	ID       ID     // resolved tenant identifier
	Reserved bool   // true when the label matched a reserved name
}
