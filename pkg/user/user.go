package user

import "time"

// User is a tutor account. All lessons in the system are owned by exactly
// one user and every query is scoped to the owner.
type User struct {
	Id           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
