package user

import (
	"time"
)

// User is a stored identity record.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Public is the client-facing view of a user.
type Public struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the view of u that may be sent to clients.
func (u *User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email}
}
