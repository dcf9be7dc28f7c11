package service

import (
	"sync"

	"blueprint/internal/auth/models"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

type SessionManager struct {
	mu     sync.Mutex
	tokens map[string]models.Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		tokens: make(map[string]models.Session),
	}
}

func (m *SessionManager) Issue(user *models.User) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.tokens[token] = models.Session{UserID: user.ID, Email: user.Email}
	return token
}

func (m *SessionManager) Resolve(token string) (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.tokens[token]
	return s, ok
}

// Revoke удаляет токен; повторный вызов безопасен.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
}
