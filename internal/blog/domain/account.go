package domain

import "time"

type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id encoded
	Active       bool   // toggled only by out-of-band admin action
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
