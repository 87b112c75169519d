package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_ValidatesFieldsInOrder(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    SignupInput
		field string
	}{
		{"everything missing", SignupInput{}, "name"},
		{"email missing", SignupInput{Name: "Ana", Password: "pw", Role: "customer"}, "email"},
		{"password missing", SignupInput{Name: "Ana", Email: "a@x.com", Role: "customer"}, "password"},
		{"role missing", SignupInput{Name: "Ana", Email: "a@x.com", Password: "pw"}, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Signup(ctx, tt.in)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
			require.Equal(t, tt.field+" is required", err.Error())
			require.Equal(t, KindValidation, Kind(err))
		})
	}

	require.Empty(t, h.notifier.Codes(), "nothing is issued for invalid input")
}

func TestSignup_RejectsUnknownRole(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	in := customer("a@x.com")
	in.Role = "admin"
	_, err := h.svc.Signup(context.Background(), in)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "role", ve.Field)
}

func TestSignup_StatusFollowsRole(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.svc.Signup(ctx, customer("c@x.com"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, res.Account.Status)
	require.False(t, res.Account.Verified)

	provider := customer("p@x.com")
	provider.Role = "provider"
	provider.ServiceType = "Plumber"
	provider.ServiceArea = "Brisbane"
	res, err = h.svc.Signup(ctx, provider)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, res.Account.Status)
	require.Equal(t, "Plumber", res.Account.ServiceType)
	require.Equal(t, "Brisbane", res.Account.ServiceArea)
}

func TestSignup_IssuesAndDeliversCode(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)
	require.True(t, res.Delivered)
	require.Equal(t, MessageCodeSent, res.Message)

	code, ok := h.notifier.LastCode("a@x.com")
	require.True(t, ok)

	acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, code, *acc.OTP)
	require.True(t, h.clock.Now().Add(5*time.Minute).Equal(*acc.OTPExpiry))
	require.NotEqual(t, "pw123", acc.PasswordHash)
	require.True(t, CheckPassword("pw123", acc.PasswordHash))
}

func TestSignup_ProjectionCarriesNoSecrets(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	res, err := h.svc.Signup(context.Background(), customer("a@x.com"))
	require.NoError(t, err)
	code, _ := h.notifier.LastCode("a@x.com")

	raw, err := json.Marshal(res.Account)
	require.NoError(t, err)
	body := string(raw)
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "pw123")
	require.NotContains(t, body, "otp")
	require.NotContains(t, body, code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)

	_, err = h.svc.Signup(ctx, customer("a@x.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Equal(t, KindDuplicateEmail, Kind(err))

	// Case differs, so this is a different address
	_, err = h.svc.Signup(ctx, customer("A@x.com"))
	require.NoError(t, err)
}

func TestSignup_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	const workers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.Signup(ctx, customer("race@x.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrDuplicateEmail):
				duplicate++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Equal(t, workers-1, duplicate)
}

func TestSignup_DeliveryFailureStillSucceeds(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	h.notifier.Fail(errors.New("relay down"))

	res, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)
	require.False(t, res.Delivered)
	require.Equal(t, MessageCodeNotSent, res.Message)

	// The account and its code exist regardless
	acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, acc.HasPendingCode())
}

func TestSignup_CodeIssueFailureKeepsAccount(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	codes := h.svc.Codes
	h.svc.Codes = failingCodes{err: errors.New("entropy unavailable")}

	res, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)
	require.False(t, res.Delivered)
	require.Equal(t, MessageCodeNotSent, res.Message)
	require.NotEmpty(t, res.Account.ID)
	require.Empty(t, h.notifier.Codes())

	acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, acc.HasPendingCode())

	// A retry of signup is a duplicate; resend is the way forward
	_, err = h.svc.Signup(ctx, customer("a@x.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)

	h.svc.Codes = codes
	require.NoError(t, h.svc.ResendOTP(ctx, "a@x.com"))
	code, ok := h.notifier.LastCode("a@x.com")
	require.True(t, ok)
	require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", code))
}

func TestResendOTP(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing email", func(t *testing.T) {
		h := newHarness(t)
		require.Equal(t, KindValidation, Kind(h.svc.ResendOTP(ctx, "")))
	})

	t.Run("unknown email", func(t *testing.T) {
		h := newHarness(t)
		require.ErrorIs(t, h.svc.ResendOTP(ctx, "nobody@x.com"), ErrNoSuchAccount)
	})

	t.Run("overwrites the pending code", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)
		first, _ := h.notifier.LastCode("a@x.com")

		require.NoError(t, h.svc.ResendOTP(ctx, "a@x.com"))
		second, _ := h.notifier.LastCode("a@x.com")
		require.NotEqual(t, first, second)

		require.ErrorIs(t, h.svc.VerifyOTP(ctx, "a@x.com", first), ErrInvalidCode)
		require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", second))
	})

	t.Run("already verified", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)
		code, _ := h.notifier.LastCode("a@x.com")
		require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", code))

		err = h.svc.ResendOTP(ctx, "a@x.com")
		require.ErrorIs(t, err, ErrAlreadyVerified)
		require.Equal(t, KindAlreadyVerified, Kind(err))
	})

	t.Run("delivery failure is surfaced", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)

		h.notifier.Fail(errors.New("relay down"))
		err = h.svc.ResendOTP(ctx, "a@x.com")
		require.ErrorIs(t, err, ErrNotifierFailure)
		require.Contains(t, err.Error(), "relay down")
		require.Equal(t, KindNotifierFailure, Kind(err))
	})
}

func TestResendOTP_ConcurrentLastWriterWins(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.svc.ResendOTP(ctx, "a@x.com"))
		}()
	}
	wg.Wait()

	acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	current := *acc.OTP

	// Exactly one issued code is live; every other one was superseded
	for _, msg := range h.notifier.Codes() {
		if msg.Code == current {
			continue
		}
		require.ErrorIs(t, h.svc.VerifyOTP(ctx, "a@x.com", msg.Code), ErrInvalidCode)
	}
	require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", current))
}

func TestVerifyOTP(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing input", func(t *testing.T) {
		h := newHarness(t)
		require.Equal(t, KindValidation, Kind(h.svc.VerifyOTP(ctx, "", "123456")))
		require.Equal(t, KindValidation, Kind(h.svc.VerifyOTP(ctx, "a@x.com", "")))
	})

	t.Run("unknown email", func(t *testing.T) {
		h := newHarness(t)
		require.ErrorIs(t, h.svc.VerifyOTP(ctx, "nobody@x.com", "123456"), ErrNoSuchAccount)
	})

	t.Run("wrong code never verifies", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)

		require.ErrorIs(t, h.svc.VerifyOTP(ctx, "a@x.com", "999999"), ErrInvalidCode)

		acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.False(t, acc.Verified)
		require.True(t, acc.HasPendingCode())
	})

	t.Run("expiry boundary", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)
		code, _ := h.notifier.LastCode("a@x.com")

		h.clock.Advance(5 * time.Minute)
		err = h.svc.VerifyOTP(ctx, "a@x.com", code)
		require.ErrorIs(t, err, ErrExpiredCode)
		require.Equal(t, KindExpiredCode, Kind(err))
	})

	t.Run("verifies just before expiry and clears the code", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)
		code, _ := h.notifier.LastCode("a@x.com")

		h.clock.Advance(5*time.Minute - time.Second)
		require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", code))

		acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.True(t, acc.Verified)
		require.Nil(t, acc.OTP)
		require.Nil(t, acc.OTPExpiry)

		// single use
		require.ErrorIs(t, h.svc.VerifyOTP(ctx, "a@x.com", code), ErrInvalidCode)
	})

	t.Run("sends a welcome once verified", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)
		code, _ := h.notifier.LastCode("a@x.com")

		require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", code))
		h.svc.Wait()

		welcomes := h.notifier.Welcomes()
		require.Len(t, welcomes, 1)
		require.Equal(t, "a@x.com", welcomes[0].To)
		require.Equal(t, "Ana", welcomes[0].Name)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing input", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Login(ctx, "a@x.com", "")
		require.Equal(t, KindValidation, Kind(err))
		require.Equal(t, "Email and password required", err.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Login(ctx, "nobody@x.com", "pw123")
		require.ErrorIs(t, err, ErrNoSuchAccount)
	})

	t.Run("unverified is reported before the password is checked", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)

		_, err = h.svc.Login(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, err, ErrNotVerified)
		_, err = h.svc.Login(ctx, "a@x.com", "pw123")
		require.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("verified account", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.svc.Signup(ctx, customer("a@x.com"))
		require.NoError(t, err)
		code, _ := h.notifier.LastCode("a@x.com")
		require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", code))

		_, err = h.svc.Login(ctx, "a@x.com", "pw124")
		require.ErrorIs(t, err, ErrInvalidPassword)

		user, err := h.svc.Login(ctx, "a@x.com", "pw123")
		require.NoError(t, err)
		require.True(t, user.Verified)
		require.Equal(t, "a@x.com", user.Email)
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)

	user, err := h.svc.Lookup(ctx, res.Account.ID)
	require.NoError(t, err)
	require.Equal(t, res.Account, user)

	user, err = h.svc.Lookup(ctx, strings.ToLower(res.Account.ID))
	require.NoError(t, err)
	require.Equal(t, res.Account.ID, user.ID)

	_, err = h.svc.Lookup(ctx, "not-an-id")
	require.ErrorIs(t, err, ErrMalformedID)
	require.Equal(t, KindValidation, Kind(err))

	_, err = h.svc.Lookup(ctx, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	require.ErrorIs(t, err, ErrNoSuchAccount)

	// ObjectId hex of a migrated document is a well-formed id
	_, err = h.svc.Lookup(ctx, "65f1c2a9e4b0a1d2c3f4e5a6")
	require.ErrorIs(t, err, ErrNoSuchAccount)

	_, err = h.svc.Lookup(ctx, "65F1C2A9E4B0A1D2C3F4E5A6")
	require.ErrorIs(t, err, ErrMalformedID)
}

// TestScenario walks a customer from signup to login against a simulated clock.
func TestScenario(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.svc.Signup(ctx, customer("a@x.com"))
	require.NoError(t, err)
	require.False(t, res.Account.Verified)
	require.Equal(t, domain.StatusActive, res.Account.Status)

	require.NoError(t, h.svc.ResendOTP(ctx, "a@x.com"))
	code, _ := h.notifier.LastCode("a@x.com")
	require.Len(t, code, 6)

	acc, err := h.svc.Credentials.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, acc.OTPExpiry.Sub(h.clock.Now()))

	require.ErrorIs(t, h.svc.VerifyOTP(ctx, "a@x.com", "000000"), ErrInvalidCode)

	h.clock.Advance(301 * time.Second)
	require.ErrorIs(t, h.svc.VerifyOTP(ctx, "a@x.com", code), ErrExpiredCode)

	require.NoError(t, h.svc.ResendOTP(ctx, "a@x.com"))
	fresh, _ := h.notifier.LastCode("a@x.com")
	require.NoError(t, h.svc.VerifyOTP(ctx, "a@x.com", fresh))

	user, err := h.svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	require.True(t, user.Verified)

	_, err = h.svc.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestKind(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Kind(nil))
	require.Equal(t, KindValidation, Kind(&ValidationError{Field: "name"}))
	require.Equal(t, KindDuplicateEmail, Kind(ErrDuplicateEmail))
	require.Equal(t, KindNoSuchAccount, Kind(ErrNoSuchAccount))
	require.Equal(t, KindNotVerified, Kind(ErrNotVerified))
	require.Equal(t, KindInvalidPassword, Kind(ErrInvalidPassword))
	require.Equal(t, KindInvalidCode, Kind(ErrInvalidCode))
	require.Equal(t, KindServerError, Kind(errors.New("database is locked")))
}
