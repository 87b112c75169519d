package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultDatabase matches the database the marketplace has always used.
	DefaultDatabase = "local_service_platform"

	accountsCollection = "users"
)

// Store keeps accounts as documents in a MongoDB collection.
type Store struct {
	client   *mongo.Client
	accounts *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// NewStore connects to uri and verifies the connection. An empty database
// name selects DefaultDatabase.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &Store{
		client:   client,
		accounts: client.Database(database).Collection(accountsCollection),
	}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the server is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{c: s.accounts} }

// ApplyMigrations ensures the indexes the contract relies on. Documents are
// schemaless, so indexes are the only migration.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Default simple collation keeps the match exact and case-sensitive
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("accounts_email_uniq").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "otp_expiry", Value: 1}},
			Options: options.Index().
				SetName("accounts_otp_expiry_idx").
				SetPartialFilterExpression(bson.D{{Key: "otp_expiry", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
	})
	return err
}

// accountDoc mirrors the document shape of the users collection.
type accountDoc struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	Name         string     `bson:"name"`
	Role         string     `bson:"role"`
	Mobile       string     `bson:"mobile"`
	Address      string     `bson:"address"`
	ServiceType  string     `bson:"service_type"`
	ServiceArea  string     `bson:"service_area"`
	PasswordHash string     `bson:"password_hash"`
	Verified     bool       `bson:"verified"`
	OTP          *string    `bson:"otp,omitempty"`
	OTPExpiry    *time.Time `bson:"otp_expiry,omitempty"`
	Status       string     `bson:"status"`
	CreatedAt    time.Time  `bson:"created_at"`
}

func toDoc(a domain.Account) accountDoc {
	return accountDoc{
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
		OTP:          a.OTP,
		OTPExpiry:    a.OTPExpiry,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt.UTC(),
	}
}

func mapAccount(d accountDoc) domain.Account {
	acc := domain.Account{
		ID: idx.ID(d.ID),
		Profile: domain.Profile{
			Name:        d.Name,
			Email:       d.Email,
			Role:        domain.Role(d.Role),
			Mobile:      d.Mobile,
			Address:     d.Address,
			ServiceType: d.ServiceType,
			ServiceArea: d.ServiceArea,
		},
		PasswordHash: d.PasswordHash,
		Verified:     d.Verified,
		Status:       domain.Status(d.Status),
		CreatedAt:    d.CreatedAt.UTC(),
	}

	if d.OTP != nil && d.OTPExpiry != nil {
		code := *d.OTP
		expiry := d.OTPExpiry.UTC()
		acc.OTP = &code
		acc.OTPExpiry = &expiry
	}
	return acc
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
