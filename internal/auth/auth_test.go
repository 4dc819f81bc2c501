package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate("member-1")
	require.NoError(t, err)

	id := issuer.Authorize("Bearer " + token)
	assert.True(t, id.Allowed)
	assert.Equal(t, "member-1", id.Subject)
}

func TestAuthorizeRejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Generate("member-1")
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing scheme", token},
		{"wrong scheme", "Basic " + token},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Identity{}, issuer.Authorize(tt.header))
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		assert.Equal(t, Identity{}, other.Authorize("Bearer "+token))
	})
}

func TestAuthorizeExpiredToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("test-secret", time.Hour).WithClock(func() time.Time { return now })

	token, err := issuer.Generate("member-1")
	require.NoError(t, err)

	// Still valid just before expiry.
	issuer.WithClock(func() time.Time { return now.Add(59 * time.Minute) })
	assert.True(t, issuer.Authorize("Bearer "+token).Allowed)

	// Rejected once the TTL has passed.
	issuer.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
	assert.Equal(t, Identity{}, issuer.Authorize("Bearer "+token))
}
