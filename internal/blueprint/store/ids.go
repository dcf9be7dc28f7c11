package store

import "github.com/google/uuid"

// ============================================================
// Identifier issuing
// ============================================================

// IDIssuer: единственный источник идентификаторов макетов и элементов.
type IDIssuer interface {
	NewID() string
}

type UUIDIssuer struct{}

func (UUIDIssuer) NewID() string {
	return uuid.NewString()
}
