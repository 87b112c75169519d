package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, mongo) implement this and are opened once at startup and closed
// on shutdown.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing database is still reachable.
	Ping(ctx context.Context) error
}

// Accounts persists identity records. Every mutation is a single atomic
// statement so concurrent requests for the same email cannot interleave.
type Accounts interface {
	// CreateAccount inserts a new account. ErrAlreadyExists when the email
	// (exact, case-sensitive) is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByEmail is an exact, case-sensitive lookup.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id idx.ID) (domain.Account, error)

	// SetOTP overwrites the pending code of an unverified account.
	// ErrNotFound when no unverified account with that email exists.
	SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error

	// ConsumeOTP marks the account verified and clears the code, provided the
	// account is unverified, the code matches and now is before the expiry.
	// ErrNotFound when any of those conditions fails; nothing is changed then.
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) error

	// PurgeExpiredOTPs clears codes that expired before the cutoff and
	// returns how many accounts were touched.
	PurgeExpiredOTPs(ctx context.Context, before time.Time) (int64, error)
}
