package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copymastery/copyengine/internal/domain/models"
)

func headerWith(pairs ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

func TestIdentityResolver_Resolve_FromHeaders(t *testing.T) {
	r := NewIdentityResolver(false, models.Identity{}, zap.NewNop())

	ident := r.Resolve(headerWith(
		HeaderUserID, "user_123",
		HeaderUsername, "jane",
		HeaderEmail, "jane@example.com",
	))

	require.NotNil(t, ident)
	assert.Equal(t, "user_123", ident.ID)
	assert.Equal(t, "jane", ident.Username)
	assert.Equal(t, "jane@example.com", ident.Email)
}

func TestIdentityResolver_Resolve_UsernameDefaultsToUnknown(t *testing.T) {
	r := NewIdentityResolver(false, models.Identity{}, zap.NewNop())

	ident := r.Resolve(headerWith(HeaderUserID, "user_123"))

	require.NotNil(t, ident)
	assert.Equal(t, "unknown", ident.Username)
	assert.Empty(t, ident.Email)
}

func TestIdentityResolver_Resolve_SyntheticFallback(t *testing.T) {
	synthetic := models.Identity{
		ID:       "agent_1",
		Username: "test-user",
		Email:    "test@copywritingmastery.com",
		Name:     "Test User",
	}
	r := NewIdentityResolver(true, synthetic, zap.NewNop())

	ident := r.Resolve(http.Header{})

	require.NotNil(t, ident)
	assert.Equal(t, synthetic, *ident)
}

func TestIdentityResolver_Resolve_HeadersWinOverSynthetic(t *testing.T) {
	r := NewIdentityResolver(true, models.Identity{ID: "agent_1"}, zap.NewNop())

	ident := r.Resolve(headerWith(HeaderUserID, "user_123", HeaderUsername, "jane"))

	require.NotNil(t, ident)
	assert.Equal(t, "user_123", ident.ID)
}

func TestIdentityResolver_Resolve_DeniedWithoutFallback(t *testing.T) {
	tests := []struct {
		name           string
		allowSynthetic bool
		synthetic      models.Identity
	}{
		{name: "fallback disabled", allowSynthetic: false, synthetic: models.Identity{ID: "agent_1"}},
		{name: "fallback enabled but empty", allowSynthetic: true, synthetic: models.Identity{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewIdentityResolver(tt.allowSynthetic, tt.synthetic, zap.NewNop())
			assert.Nil(t, r.Resolve(http.Header{}))
		})
	}
}

func TestIdentityResolver_Require(t *testing.T) {
	r := NewIdentityResolver(false, models.Identity{}, zap.NewNop())

	_, err := r.Require(http.Header{})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	ident, err := r.Require(headerWith(HeaderUserID, "user_123"))
	require.NoError(t, err)
	assert.Equal(t, "user_123", ident.ID)
}
