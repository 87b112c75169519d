package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/sqlite/gen"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db *sql.DB
	q  *gen.Queries
}

var _ store.Store = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite has a single writer. One connection also keeps ":memory:"
	// databases from vanishing between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db: db,
		q:  gen.New(db),
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func mapAccount(row gen.Account) domain.Account {
	acc := domain.Account{
		ID: idx.ID(row.ID),
		Profile: domain.Profile{
			Name:        row.Name,
			Email:       row.Email,
			Role:        domain.Role(row.Role),
			Mobile:      row.Mobile,
			Address:     row.Address,
			ServiceType: row.ServiceType,
			ServiceArea: row.ServiceArea,
		},
		PasswordHash: row.PasswordHash,
		Verified:     row.Verified,
		Status:       domain.Status(row.Status),
		CreatedAt:    fromMillis(row.CreatedAt),
	}

	if row.Otp.Valid && row.OtpExpiresAt.Valid {
		code := row.Otp.String
		expiry := fromMillis(row.OtpExpiresAt.Int64)
		acc.OTP = &code
		acc.OTPExpiry = &expiry
	}
	return acc
}
