package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/idx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

// ProfileService implements the profile read and partial-update flows.
type ProfileService struct {
	Store store.Store
}

// GetOrCreate returns the account's profile, creating an empty one first
// if it doesn't exist yet. Concurrent first reads converge on a single
// profile row.
func (s *ProfileService) GetOrCreate(ctx context.Context, accountID string) (domain.Profile, error) {
	log := slogx.FromContext(ctx)

	profile, err := s.Store.Profiles().GetProfileByAccount(ctx, accountID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch profile", slog.String("account_id", accountID), slog.Any("error", err))
		return domain.Profile{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Profiles().CreateProfileIfAbsent(ctx, domain.Profile{
			ID:        idx.New().String(),
			AccountID: accountID,
		})
	})
	if err != nil {
		log.Error("failed to create profile", slog.String("account_id", accountID), slog.Any("error", err))
		return domain.Profile{}, err
	}

	profile, err = s.Store.Profiles().GetProfileByAccount(ctx, accountID)
	if err != nil {
		log.Error("failed to fetch profile after create", slog.String("account_id", accountID), slog.Any("error", err))
		return domain.Profile{}, err
	}

	log.Debug("profile created lazily", slog.String("account_id", accountID))
	return profile, nil
}

// Update applies a partial merge: nil fields stay untouched. The profile
// is created first if the account never touched it before.
func (s *ProfileService) Update(ctx context.Context, accountID string, patch domain.ProfilePatch) (domain.Profile, error) {
	log := slogx.FromContext(ctx)

	if patch.BirthDate != nil && *patch.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", *patch.BirthDate); err != nil {
			fieldErrs := apierr.FieldErrors{}
			fieldErrs.Add("birth_date", "Date has wrong format. Use YYYY-MM-DD")
			return domain.Profile{}, fieldErrs
		}
	}

	// Fetch-or-create so a PUT before the first GET still works.
	if _, err := s.GetOrCreate(ctx, accountID); err != nil {
		return domain.Profile{}, err
	}

	if err := s.Store.Profiles().UpdateProfile(ctx, accountID, patch); err != nil {
		log.Error("failed to update profile", slog.String("account_id", accountID), slog.Any("error", err))
		return domain.Profile{}, err
	}

	profile, err := s.Store.Profiles().GetProfileByAccount(ctx, accountID)
	if err != nil {
		return domain.Profile{}, err
	}

	log.Info("profile updated", slog.String("account_id", accountID))
	return profile, nil
}
