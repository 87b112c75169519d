package mongo_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/mongo"
	"github.com/aussiebroadwan/localserve/internal/identity/store/storetest"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// mongoURI is set by TestMain when a container could be started.
var (
	mongoURI   string
	skipReason string
)

// TestMain starts one mongo container for the package. Every test gets its
// own database inside it.
func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		skipReason = "mongo integration tests skipped in -short mode"
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		skipReason = fmt.Sprintf("mongo integration tests skipped: cannot start container: %v", err)
		os.Exit(m.Run())
	}

	host, err := container.Host(ctx)
	if err == nil {
		var port string
		if mapped, perr := container.MappedPort(ctx, "27017"); perr == nil {
			port = mapped.Port()
			mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port)
		} else {
			err = perr
		}
	}
	if err != nil {
		skipReason = fmt.Sprintf("mongo integration tests skipped: %v", err)
	}

	exitCode := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(exitCode)
}

func newDatabaseStore(t *testing.T) store.Store {
	t.Helper()
	if mongoURI == "" {
		t.Skip(skipReason)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	s, err := mongo.NewStore(ctx, mongoURI, "identity_"+strings.ToLower(idx.New().String()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	// Index creation is idempotent
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, newDatabaseStore)
}

// A document written by the original backend: ObjectId _id and a binary
// bcrypt hash.
func TestStore_LegacyDocument(t *testing.T) {
	if mongoURI == "" {
		t.Skip(skipReason)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	database := "identity_" + strings.ToLower(idx.New().String())
	s, err := mongo.NewStore(ctx, mongoURI, database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	raw, err := mongodriver.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Disconnect(context.Background()) })

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	require.NoError(t, err)

	oid := primitive.NewObjectID()
	_, err = raw.Database(database).Collection("users").InsertOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "name", Value: "Bo"},
		{Key: "email", Value: "bo@x.com"},
		{Key: "password_hash", Value: primitive.Binary{Data: hash}},
		{Key: "role", Value: "provider"},
		{Key: "service_type", Value: "Plumber"},
		{Key: "verified", Value: true},
		{Key: "status", Value: "pending"},
		{Key: "created_at", Value: time.Now().UTC()},
	})
	require.NoError(t, err)

	acc, err := s.Accounts().GetAccountByID(ctx, idx.ID(oid.Hex()))
	require.NoError(t, err)
	require.Equal(t, oid.Hex(), acc.ID.String())
	require.Equal(t, "bo@x.com", acc.Email)
	require.Equal(t, "Plumber", acc.ServiceType)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("pw123")))

	byEmail, err := s.Accounts().GetAccountByEmail(ctx, "bo@x.com")
	require.NoError(t, err)
	require.Equal(t, acc.ID, byEmail.ID)

	_, err = s.Accounts().GetAccountByID(ctx, idx.ID(primitive.NewObjectID().Hex()))
	require.ErrorIs(t, err, store.ErrNotFound)
}
