package service

import (
	"testing"

	"blueprint/internal/auth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions(t *testing.T) {
	m := NewSessionManager()
	token := m.Issue(&models.User{ID: "u1", Email: "a@b.co"})

	s, ok := m.Resolve(token)
	require.True(t, ok)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "a@b.co", s.Email)

	m.Revoke(token)
	m.Revoke(token)
	_, ok = m.Resolve(token)
	assert.False(t, ok)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}

func TestValidateSignup(t *testing.T) {
	assert.NoError(t, ValidateSignup("a@b.co", "secret1", "secret1"))
	assert.ErrorIs(t, ValidateSignup("Ann <a@b.co>", "secret1", "secret1"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateSignup("a@b.co", "12345", "12345"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidateSignup("a@b.co", "secret1", "secret"), ErrPasswordMismatch)
}
