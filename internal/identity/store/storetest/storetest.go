// Package storetest holds the behavioural contract every store driver must
// satisfy. Driver packages call Run from their own tests.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, migrated and empty store.
type Factory func(t *testing.T) store.Store

// NewAccount builds an unverified customer account for tests.
func NewAccount(email string) domain.Account {
	return domain.Account{
		ID: idx.New(),
		Profile: domain.Profile{
			Name:  "Test User",
			Email: email,
			Role:  domain.RoleCustomer,
		},
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Status:       domain.StatusActive,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Run exercises the Accounts contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("create and fetch", func(t *testing.T) {
		s := newStore(t)
		acc := NewAccount("a@x.com")
		acc.Role = domain.RoleProvider
		acc.Status = domain.StatusPending
		acc.Mobile = "0400 000 000"
		acc.Address = "1 Queen St"
		acc.ServiceType = "plumbing"
		acc.ServiceArea = "Brisbane"
		require.NoError(t, s.Accounts().CreateAccount(ctx, acc))

		byEmail, err := s.Accounts().GetAccountByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, acc.ID, byEmail.ID)
		require.Equal(t, acc.Profile, byEmail.Profile)
		require.Equal(t, acc.PasswordHash, byEmail.PasswordHash)
		require.Equal(t, domain.StatusPending, byEmail.Status)
		require.False(t, byEmail.Verified)
		require.False(t, byEmail.HasPendingCode())
		require.WithinDuration(t, acc.CreatedAt, byEmail.CreatedAt, time.Millisecond)

		byID, err := s.Accounts().GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, byEmail.Email, byID.Email)
	})

	t.Run("missing account", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Accounts().GetAccountByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Accounts().GetAccountByID(ctx, idx.New())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("dup@x.com")))

		err := s.Accounts().CreateAccount(ctx, NewAccount("dup@x.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("email match is exact and case-sensitive", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("Case@X.com")))
		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("case@x.com")))

		_, err := s.Accounts().GetAccountByEmail(ctx, "CASE@X.COM")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Accounts().GetAccountByEmail(ctx, " case@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set otp overwrites pending code", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("otp@x.com")))

		require.NoError(t, s.Accounts().SetOTP(ctx, "otp@x.com", "111111", base.Add(5*time.Minute)))
		require.NoError(t, s.Accounts().SetOTP(ctx, "otp@x.com", "222222", base.Add(10*time.Minute)))

		acc, err := s.Accounts().GetAccountByEmail(ctx, "otp@x.com")
		require.NoError(t, err)
		require.True(t, acc.HasPendingCode())
		require.Equal(t, "222222", *acc.OTP)
		require.True(t, acc.OTPExpiry.Equal(base.Add(10*time.Minute)))

		// The superseded code no longer verifies
		require.ErrorIs(t, s.Accounts().ConsumeOTP(ctx, "otp@x.com", "111111", base), store.ErrNotFound)
	})

	t.Run("set otp requires an unverified account", func(t *testing.T) {
		s := newStore(t)
		require.ErrorIs(t, s.Accounts().SetOTP(ctx, "ghost@x.com", "123456", base), store.ErrNotFound)

		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("v@x.com")))
		require.NoError(t, s.Accounts().SetOTP(ctx, "v@x.com", "123456", base.Add(time.Minute)))
		require.NoError(t, s.Accounts().ConsumeOTP(ctx, "v@x.com", "123456", base))

		require.ErrorIs(t, s.Accounts().SetOTP(ctx, "v@x.com", "654321", base.Add(time.Minute)), store.ErrNotFound)

		acc, err := s.Accounts().GetAccountByEmail(ctx, "v@x.com")
		require.NoError(t, err)
		require.True(t, acc.Verified)
		require.False(t, acc.HasPendingCode())
	})

	t.Run("consume otp", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("c@x.com")))
		expiry := base.Add(5 * time.Minute)
		require.NoError(t, s.Accounts().SetOTP(ctx, "c@x.com", "123456", expiry))

		// wrong code
		require.ErrorIs(t, s.Accounts().ConsumeOTP(ctx, "c@x.com", "000000", base), store.ErrNotFound)
		// exactly at expiry is already too late
		require.ErrorIs(t, s.Accounts().ConsumeOTP(ctx, "c@x.com", "123456", expiry), store.ErrNotFound)
		// unknown email
		require.ErrorIs(t, s.Accounts().ConsumeOTP(ctx, "nobody@x.com", "123456", base), store.ErrNotFound)

		acc, err := s.Accounts().GetAccountByEmail(ctx, "c@x.com")
		require.NoError(t, err)
		require.False(t, acc.Verified, "failed attempts never verify")
		require.True(t, acc.HasPendingCode())

		require.NoError(t, s.Accounts().ConsumeOTP(ctx, "c@x.com", "123456", expiry.Add(-time.Millisecond)))

		acc, err = s.Accounts().GetAccountByEmail(ctx, "c@x.com")
		require.NoError(t, err)
		require.True(t, acc.Verified)
		require.Nil(t, acc.OTP)
		require.Nil(t, acc.OTPExpiry)

		// a code is single use
		require.ErrorIs(t, s.Accounts().ConsumeOTP(ctx, "c@x.com", "123456", base), store.ErrNotFound)
	})

	t.Run("concurrent consume verifies once", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount("race@x.com")))
		require.NoError(t, s.Accounts().SetOTP(ctx, "race@x.com", "424242", base.Add(time.Minute)))

		const workers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.Accounts().ConsumeOTP(ctx, "race@x.com", "424242", base); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, wins)
	})

	t.Run("purge expired otps", func(t *testing.T) {
		s := newStore(t)
		for _, email := range []string{"old@x.com", "fresh@x.com", "none@x.com"} {
			require.NoError(t, s.Accounts().CreateAccount(ctx, NewAccount(email)))
		}
		require.NoError(t, s.Accounts().SetOTP(ctx, "old@x.com", "111111", base.Add(-48*time.Hour)))
		require.NoError(t, s.Accounts().SetOTP(ctx, "fresh@x.com", "222222", base.Add(-time.Hour)))

		n, err := s.Accounts().PurgeExpiredOTPs(ctx, base.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		old, err := s.Accounts().GetAccountByEmail(ctx, "old@x.com")
		require.NoError(t, err)
		require.False(t, old.HasPendingCode())
		require.Nil(t, old.OTP)

		fresh, err := s.Accounts().GetAccountByEmail(ctx, "fresh@x.com")
		require.NoError(t, err)
		require.True(t, fresh.HasPendingCode())
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, newStore(t).Ping(ctx))
	})
}
