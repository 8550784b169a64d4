package domain

import "time"

type Post struct {
	ID        string
	AuthorID  string // immutable after creation
	Title     string
	Content   string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostPatch carries a partial post update. Nil fields are left untouched.
type PostPatch struct {
	Title     *string
	Content   *string
	Published *bool
}
