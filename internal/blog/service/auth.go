package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/internal/blog/validate"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/cryptox"
	"github.com/jotterlabs/jotter/pkg/idx"
	"github.com/jotterlabs/jotter/pkg/jwtx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and wrong
	// old password alike. Callers must not be able to tell which it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled is only returned after the credential verified,
	// so it never leaks whether a disabled account's password was right.
	ErrAccountDisabled = errors.New("account is disabled")
)

// AuthService implements registration, login and password change.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Register validates the payload field by field, then cross-field, and
// creates the account atomically with the uniqueness checks. On success it
// mints an access token: registration doubles as the first login.
func (s *AuthService) Register(
	ctx context.Context,
	username, email, password, passwordConfirm string,
) (domain.Account, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Field-level checks, collected independently.
	fieldErrs := apierr.FieldErrors{}

	if err := validate.Username(username); err != nil {
		fieldErrs.Add("username", "Username must be 3-150 characters of letters, digits and '._-'")
	} else if taken, err := s.Store.Accounts().ExistsByUsername(ctx, username); err != nil {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.Account{}, "", err
	} else if taken {
		fieldErrs.Add("username", "Username already exists")
	}

	if err := validate.Email(email); err != nil {
		fieldErrs.Add("email", "Enter a valid email address")
	} else if taken, err := s.Store.Accounts().ExistsByEmail(ctx, email); err != nil {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Account{}, "", err
	} else if taken {
		fieldErrs.Add("email", "Email already registered")
	}

	if err := validate.StrongPassword(password); err != nil {
		fieldErrs.Add("password", "Password must be at least 8 characters and mix upper, lower, digits or symbols")
	}

	if fieldErrs.HasErrors() {
		return domain.Account{}, "", fieldErrs
	}

	// 2. Cross-field check, only once the fields themselves are fine.
	if password != passwordConfirm {
		fieldErrs.Add("password_confirm", "Passwords don't match")
		return domain.Account{}, "", fieldErrs
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, "", err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
	}

	// 3. Create inside a transaction. The UNIQUE constraints are the real
	// arbiter under concurrency; a loser of the race gets the same
	// duplicate-field error as if the pre-check had caught it.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().CreateAccount(ctx, account)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, "", s.duplicateFieldError(ctx, username, email)
		}
		log.Error("failed to create account",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return domain.Account{}, "", err
	}

	token, err := s.mintToken(account)
	if err != nil {
		log.Error("failed to mint access token", slog.Any("error", err))
		return domain.Account{}, "", err
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
	)

	return account, token, nil
}

// duplicateFieldError attributes a constraint violation to the field that
// collided so racing registrations report the same shape as pre-checked
// ones.
func (s *AuthService) duplicateFieldError(ctx context.Context, username, email string) error {
	fieldErrs := apierr.FieldErrors{}

	if taken, err := s.Store.Accounts().ExistsByUsername(ctx, username); err == nil && taken {
		fieldErrs.Add("username", "Username already exists")
	}
	if taken, err := s.Store.Accounts().ExistsByEmail(ctx, email); err == nil && taken {
		fieldErrs.Add("email", "Email already registered")
	}
	if !fieldErrs.HasErrors() {
		// Shouldn't happen, but never return an empty error set.
		fieldErrs.Add("username", "Username already exists")
	}

	return fieldErrs
}

// Login resolves the account by email and verifies the password. A missing
// account and a wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Account, string, error) {
	log := slogx.FromContext(ctx)

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so unknown emails are not
			// faster to probe than wrong passwords.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return domain.Account{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Account{}, "", err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		log.Warn("login failed", slog.String("account_id", account.ID))
		return domain.Account{}, "", ErrInvalidCredentials
	}

	if !account.Active {
		log.Warn("login attempt on disabled account", slog.String("account_id", account.ID))
		return domain.Account{}, "", ErrAccountDisabled
	}

	token, err := s.mintToken(account)
	if err != nil {
		log.Error("failed to mint access token", slog.Any("error", err))
		return domain.Account{}, "", err
	}

	log.Info("account logged in", slog.String("account_id", account.ID))
	return account, token, nil
}

// ChangePassword verifies the current credential before accepting the new
// one. No confirmation field; the client re-authenticates with the new
// password on its next login.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	log := slogx.FromContext(ctx)

	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		log.Error("failed to fetch account", slog.String("account_id", accountID), slog.Any("error", err))
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, account.PasswordHash); err != nil {
		log.Warn("password change with wrong old password", slog.String("account_id", accountID))
		return ErrInvalidCredentials
	}

	if err := validate.StrongPassword(newPassword); err != nil {
		fieldErrs := apierr.FieldErrors{}
		fieldErrs.Add("new_password", "Password must be at least 8 characters and mix upper, lower, digits or symbols")
		return fieldErrs
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	if err := s.Store.Accounts().UpdatePasswordHash(ctx, accountID, newHash); err != nil {
		log.Error("failed to update password hash", slog.String("account_id", accountID), slog.Any("error", err))
		return err
	}

	log.Info("password changed", slog.String("account_id", accountID))
	return nil
}

func (s *AuthService) mintToken(account domain.Account) (string, error) {
	ttl := s.AccessTTL
	if ttl == 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		account.ID,
		account.Username,
		s.Issuer,
		ttl,
		time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}

// dummyHash is a throwaway argon2id hash used to equalize timing between
// unknown-email and wrong-password login failures. The plaintext is
// irrelevant; no real password verifies against it.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
