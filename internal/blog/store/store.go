package store

import (
	"context"
	"errors"

	"github.com/jotterlabs/jotter/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement it. Sub-repositories keep concerns tidy and
// testable.
type Store interface {
	Accounts() Accounts
	Profiles() Profiles
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Multi-step
	// operations that must be atomic (registration's uniqueness check plus
	// insert, profile fetch-or-create) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ExistsByUsername reports whether the username is already registered.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is already registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateAccount inserts a new account (id is provided by the app via
	// ULID). Unique constraint violations map to ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdatePasswordHash replaces the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error

	// SetActive toggles the active flag. Exposed for administrative
	// tooling; no API endpoint drives it.
	SetActive(ctx context.Context, accountID string, active bool) error
}

type Profiles interface {
	// GetProfileByAccount returns the profile owned by an account.
	GetProfileByAccount(ctx context.Context, accountID string) (domain.Profile, error)

	// CreateProfileIfAbsent inserts an empty profile for the account unless
	// one already exists. Idempotent under concurrent callers.
	CreateProfileIfAbsent(ctx context.Context, p domain.Profile) error

	// UpdateProfile applies a partial update; nil patch fields are left
	// untouched.
	UpdateProfile(ctx context.Context, accountID string, patch domain.ProfilePatch) error
}

type Posts interface {
	// GetPostByID returns a post regardless of author or published state.
	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// GetPostByIDForAuthor returns the post only if the author owns it.
	// A mismatched author is reported as ErrNotFound, never as a distinct
	// forbidden error.
	GetPostByIDForAuthor(ctx context.Context, id, authorID string) (domain.Post, error)

	// ListPublishedPosts returns published posts from all authors, newest
	// first.
	ListPublishedPosts(ctx context.Context) ([]domain.Post, error)

	// ListPostsByAuthor returns all posts for one author regardless of
	// published state, newest first.
	ListPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)

	// CreatePost inserts a new post (id provided by the app via ULID).
	CreatePost(ctx context.Context, p domain.Post) error

	// UpdatePost applies a partial update scoped to the author; a row
	// owned by someone else is ErrNotFound.
	UpdatePost(ctx context.Context, id, authorID string, patch domain.PostPatch) error

	// DeletePost removes the post scoped to the author; a row owned by
	// someone else is ErrNotFound.
	DeletePost(ctx context.Context, id, authorID string) error
}
