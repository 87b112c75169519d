package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/postgres/gen"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"github.com/jackc/pgx/v5/pgtype"
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
		CreatedAt:    timestamptz(a.CreatedAt),
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
		Email:        email,
		Otp:          pgtype.Text{String: code, Valid: true},
		OtpExpiresAt: timestamptz(expiresAt),
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
		Otp:          pgtype.Text{String: code, Valid: true},
		OtpExpiresAt: timestamptz(now),
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
	return r.q.PurgeExpiredOTPs(ctx, timestamptz(before))
}
