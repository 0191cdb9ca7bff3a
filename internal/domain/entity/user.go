package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the app.
type User struct {
	ID           uuid.UUID `json:"id"`           // The unique identifier for the user.
	Email        string    `json:"email"`        // The email address used to sign in.
	DisplayName  string    `json:"display_name"` // The name shown in the app.
	PasswordHash string    `json:"-"`            // Bcrypt hash of the password, never serialized.
	CreatedAt    time.Time `json:"created_at"`   // Timestamp of when this account was created.
	UpdatedAt    time.Time `json:"updated_at"`   // Timestamp of the last modification.
}
