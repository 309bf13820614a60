package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate(7, RoleStaff, 3, "Front Desk")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(3), claims.GymID)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestParse_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Generate(1, RoleAdmin, 1, "A")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Generate(1, RoleAdmin, 1, "A")
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough"))
}

func TestPermissions(t *testing.T) {
	assert.True(t, CanPerformAction(&Claims{Role: RoleAdmin}, "users:write"))
	assert.False(t, CanPerformAction(&Claims{Role: RoleStaff}, "users:write"))
	assert.False(t, CanPerformAction(nil, "gym:read"))
}
