package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/metrics"
	"github.com/aussiebroadwan/localserve/internal/identity/notify/notifytest"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/localserve/pkg/cryptox"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceCodes hands out distinct codes so tests can tell deliveries apart.
type sequenceCodes struct {
	n atomic.Int64
}

func (s *sequenceCodes) Generate() (string, error) {
	return fmt.Sprintf("%06d", 100000+s.n.Add(1)), nil
}

type failingCodes struct{ err error }

func (f failingCodes) Generate() (string, error) { return "", f.err }

type harness struct {
	svc      *IdentityService
	notifier *notifytest.Recorder
	clock    *fakeClock
	registry *prometheus.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := newFakeClock()
	rec := &notifytest.Recorder{}
	reg := prometheus.NewRegistry()

	svc := &IdentityService{
		Credentials: &CredentialStore{Store: st, Now: clock.Now},
		Codes:       &sequenceCodes{},
		Notifier:    rec,
		Metrics:     metrics.New(reg),
	}
	t.Cleanup(svc.Wait)

	return &harness{svc: svc, notifier: rec, clock: clock, registry: reg}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func customer(email string) SignupInput {
	return SignupInput{Name: "Ana", Email: email, Password: "pw123", Role: "customer"}
}
