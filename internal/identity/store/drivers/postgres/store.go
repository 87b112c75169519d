package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/postgres/gen"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Store persists accounts in PostgreSQL through a pgx pool it owns.
type Store struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB // lazily opened for migrations
	q     *gen.Queries
}

var _ store.Store = (*Store)(nil)

type options struct {
	schema   string
	maxConns int32
}

// Option configures the store.
type Option func(*options) error

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema pins the search_path of every pooled connection, so tables and
// the migrations table live in that schema.
func WithSchema(schema string) Option {
	return func(o *options) error {
		schema = strings.TrimSpace(schema)
		if !identRe.MatchString(schema) {
			return fmt.Errorf("postgres: invalid schema identifier %q", schema)
		}
		o.schema = schema
		return nil
	}
}

// WithMaxConns caps the pool size.
func WithMaxConns(n int32) Option {
	return func(o *options) error {
		if n > 0 {
			o.maxConns = n
		}
		return nil
	}
}

// NewStore connects to databaseURL and verifies the connection.
func NewStore(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	if o.schema != "" {
		cfg.ConnConfig.RuntimeParams["search_path"] = o.schema
	}
	if o.maxConns > 0 {
		cfg.MaxConns = o.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool, q: gen.New(pool)}, nil
}

func (s *Store) Close() error {
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{q: s.q} }

func (s *Store) database() *sql.DB {
	if s.sqlDB == nil {
		s.sqlDB = stdlib.OpenDBFromPool(s.pool)
	}
	return s.sqlDB
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return store.ErrAlreadyExists
	}
	return err
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

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
		CreatedAt:    row.CreatedAt.Time.UTC(),
	}

	if row.Otp.Valid && row.OtpExpiresAt.Valid {
		code := row.Otp.String
		expiry := row.OtpExpiresAt.Time.UTC()
		acc.OTP = &code
		acc.OTPExpiry = &expiry
	}
	return acc
}
