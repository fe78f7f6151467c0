package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated author. PasswordHash never leaves the
// identity package; handlers expose only ID, Email, and Name.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
