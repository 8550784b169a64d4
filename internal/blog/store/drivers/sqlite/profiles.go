package sqlite

import (
	"context"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) GetProfileByAccount(ctx context.Context, accountID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, bio, location, birth_date, avatar, created_at, updated_at
		 FROM profiles WHERE account_id = ?`, accountID,
	).Scan(
		&p.ID,
		&p.AccountID,
		&p.Bio,
		&p.Location,
		&p.BirthDate,
		&p.Avatar,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

// CreateProfileIfAbsent relies on the UNIQUE(account_id) constraint:
// INSERT OR IGNORE makes concurrent fetch-or-create converge on one row.
func (r *profilesRepo) CreateProfileIfAbsent(ctx context.Context, p domain.Profile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO profiles (id, account_id, bio, location, birth_date, avatar, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AccountID, p.Bio, p.Location, p.BirthDate, p.Avatar, now, now,
	)
	return err
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, accountID string, patch domain.ProfilePatch) error {
	// Nil patch fields bind as NULL; COALESCE keeps the stored value.
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET
			bio        = COALESCE(?, bio),
			location   = COALESCE(?, location),
			birth_date = COALESCE(?, birth_date),
			avatar     = COALESCE(?, avatar),
			updated_at = ?
		 WHERE account_id = ?`,
		patch.Bio, patch.Location, patch.BirthDate, patch.Avatar,
		time.Now().UTC(), accountID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
