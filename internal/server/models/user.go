package models

import "time"

// User is an account in the movie catalog. The password hash is owned by the
// account service and never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
