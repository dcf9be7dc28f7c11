package models

import "time"

// ============================================================
// User Model
// ============================================================

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session: владелец токена, как его видит редактор.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}
