package service

import (
	"context"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
)

type AccountService struct {
	Store store.Store
}

// GetAccountByID fetches an account by id.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (domain.Account, error) {
	return s.Store.Accounts().GetAccountByID(ctx, accountID)
}
