package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/sqlite/gen"
	"github.com/aussiebroadwan/localserve/pkg/idx"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID.String(),
		Email:        a.Email,
		Name:         a.Name,
		Role:         string(a.Role),
		Mobile:       a.Mobile,
		Address:      a.Address,
		ServiceType:  a.ServiceType,
		ServiceArea:  a.ServiceArea,
		PasswordHash: a.PasswordHash,
		Verified:     a.Verified,
		Status:       string(a.Status),
		CreatedAt:    toMillis(a.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id idx.ID) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id.String())
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	n, err := r.q.SetAccountOTP(ctx, gen.SetAccountOTPParams{
		Otp:          sql.NullString{String: code, Valid: true},
		OtpExpiresAt: sql.NullInt64{Int64: toMillis(expiresAt), Valid: true},
		Email:        email,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) ConsumeOTP(ctx context.Context, email, code string, now time.Time) error {
	n, err := r.q.ConsumeAccountOTP(ctx, gen.ConsumeAccountOTPParams{
		Email:        email,
		Otp:          sql.NullString{String: code, Valid: true},
		OtpExpiresAt: sql.NullInt64{Int64: toMillis(now), Valid: true},
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) PurgeExpiredOTPs(ctx context.Context, before time.Time) (int64, error) {
	return r.q.PurgeExpiredOTPs(ctx, sql.NullInt64{Int64: toMillis(before), Valid: true})
}
