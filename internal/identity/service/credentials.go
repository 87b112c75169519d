package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/pkg/cryptox"
	"github.com/aussiebroadwan/localserve/pkg/idx"
)

// CredentialStore owns account persistence, password hashing and the one-time
// code lifecycle. Plaintext passwords never leave Create.
type CredentialStore struct {
	Store store.Store

	// Now is the clock used for code expiry. Nil means time.Now.
	Now func() time.Time
}

func (c *CredentialStore) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

// Create hashes the password and inserts an unverified account with no
// pending code. Status is derived from the role.
func (c *CredentialStore) Create(ctx context.Context, profile domain.Profile, password string) (domain.Account, error) {
	if _, err := c.Store.Accounts().GetAccountByEmail(ctx, profile.Email); err == nil {
		return domain.Account{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := c.now()
	acc := domain.Account{
		ID:           idx.NewAt(now),
		Profile:      profile,
		PasswordHash: hash,
		Verified:     false,
		Status:       domain.StatusFor(profile.Role),
		CreatedAt:    now.Truncate(time.Millisecond),
	}

	if err := c.Store.Accounts().CreateAccount(ctx, acc); err != nil {
		// Lost a race with a concurrent signup for the same address
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrDuplicateEmail
		}
		return domain.Account{}, err
	}
	return acc, nil
}

// FindByEmail is an exact, case-sensitive lookup.
func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	acc, err := c.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrNoSuchAccount
	}
	return acc, err
}

// legacyObjectID matches the hex ObjectId of accounts migrated from the
// original document store. They keep that id instead of a ULID.
var legacyObjectID = regexp.MustCompile(`^[0-9a-f]{24}$`)

// FindByID parses id first so malformed input never reaches the store.
// ULIDs and lower case 24 digit ObjectId hex are accepted.
func (c *CredentialStore) FindByID(ctx context.Context, id string) (domain.Account, error) {
	parsed, err := idx.Parse(id)
	if err != nil {
		if !legacyObjectID.MatchString(id) {
			return domain.Account{}, ErrMalformedID
		}
		parsed = idx.ID(id)
	}

	acc, err := c.Store.Accounts().GetAccountByID(ctx, parsed)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrNoSuchAccount
	}
	return acc, err
}

// SetOTP replaces any pending code of an unverified account and returns the
// new expiry.
func (c *CredentialStore) SetOTP(ctx context.Context, email, code string, ttl time.Duration) (time.Time, error) {
	expiresAt := c.now().Add(ttl)

	err := c.Store.Accounts().SetOTP(ctx, email, code, expiresAt)
	if errors.Is(err, store.ErrNotFound) {
		acc, ferr := c.FindByEmail(ctx, email)
		if ferr != nil {
			return time.Time{}, ferr
		}
		if acc.Verified {
			return time.Time{}, ErrAlreadyVerified
		}
		return time.Time{}, err
	}
	if err != nil {
		return time.Time{}, err
	}
	return expiresAt, nil
}

// VerifyOTP consumes a matching, unexpired code and marks the account
// verified in a single compare-and-swap. On failure nothing changes and the
// account is re-read only to explain why.
func (c *CredentialStore) VerifyOTP(ctx context.Context, email, code string) error {
	now := c.now()

	err := c.Store.Accounts().ConsumeOTP(ctx, email, code, now)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	acc, err := c.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	switch {
	case !acc.HasPendingCode() || *acc.OTP != code:
		return ErrInvalidCode
	case !now.Before(*acc.OTPExpiry):
		return ErrExpiredCode
	default:
		// The code matched on re-read, so another request consumed or
		// replaced it in between.
		return ErrInvalidCode
	}
}

// CheckPassword verifies plaintext against a stored hash in constant time.
func CheckPassword(plaintext, hash string) bool {
	return cryptox.VerifyPassword(plaintext, hash) == nil
}
