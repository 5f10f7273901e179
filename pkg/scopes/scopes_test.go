package scopes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantkit/pkg/scopes"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("splits scope string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"read", "write", "admin.users"}, scopes.Parse("read write admin.users"))
	})

	t.Run("trims and drops empty entries", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"read", "write"}, scopes.Parse("  read   write  "))
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, scopes.Parse(""))
		assert.Nil(t, scopes.Parse("   "))
	})
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "read write", scopes.Join([]string{"read", "write"}))
	assert.Equal(t, "", scopes.Join(nil))
}

func TestParseJoinRoundTrip(t *testing.T) {
	t.Parallel()

	in := []string{"read", "admin.users", "billing.*"}
	assert.Equal(t, in, scopes.Parse(scopes.Join(in)))
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope, pattern string
		want           bool
	}{
		{"read", "read", true},
		{"read", "*", true},
		{"admin.users", "admin.*", true},
		{"admin.users.list", "admin.*", true},
		{"admin", "admin.*", false},
		{"administrator", "admin.*", false},
		{"read", "write", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scopes.Matches(tt.scope, tt.pattern),
			"scope %q pattern %q", tt.scope, tt.pattern)
	}
}

func TestHasAll(t *testing.T) {
	t.Parallel()

	t.Run("empty requirement always satisfied", func(t *testing.T) {
		t.Parallel()

		assert.True(t, scopes.HasAll(nil, nil))
		assert.True(t, scopes.HasAll([]string{"read"}, nil))
	})

	t.Run("wildcard grant satisfies everything", func(t *testing.T) {
		t.Parallel()

		assert.True(t, scopes.HasAll([]string{"*"}, []string{"read", "admin.users"}))
	})

	t.Run("all required must be covered", func(t *testing.T) {
		t.Parallel()

		granted := []string{"admin.*", "read"}
		assert.True(t, scopes.HasAll(granted, []string{"admin.users", "read"}))
		assert.False(t, scopes.HasAll(granted, []string{"admin.users", "write"}))
	})

	t.Run("empty grant fails non-empty requirement", func(t *testing.T) {
		t.Parallel()

		assert.False(t, scopes.HasAll(nil, []string{"read"}))
	})
}
