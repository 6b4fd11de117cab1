package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	token := CreateSession(7, "a@x.edu", RoleStudent, time.Hour)

	session, ok := GetSession(token)
	require.True(t, ok)
	assert.Equal(t, uint(7), session.UserID)
	assert.Equal(t, "a@x.edu", session.Email)
	assert.Equal(t, RoleStudent, session.Role)

	DeleteSession(token)
	_, ok = GetSession(token)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	token := CreateSession(7, "a@x.edu", RoleStudent, -time.Minute)

	_, ok := GetSession(token)
	assert.False(t, ok)
}

func TestSessionTokensAreUnique(t *testing.T) {
	a := GenerateSessionToken()
	b := GenerateSessionToken()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
