package domain

import "time"

// Profile is the optional one-to-one companion of an Account. It is created
// lazily on first profile access, so every field apart from the owning
// account id may be empty.
type Profile struct {
	ID        string
	AccountID string
	Bio       string
	Location  string
	BirthDate string // YYYY-MM-DD, empty when unset
	Avatar    string // URL reference
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched.
type ProfilePatch struct {
	Bio       *string
	Location  *string
	BirthDate *string
	Avatar    *string
}
