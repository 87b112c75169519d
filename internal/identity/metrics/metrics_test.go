package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/localserve/internal/identity/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Signup("customer")
	m.Signup("provider")
	m.Signup("customer")
	m.Delivery(true)
	m.Delivery(false)
	m.Verification("verified")
	m.Login("invalid_password")
	m.CodesPurged(3)
	m.CodesPurged(0)

	count, err := testutil.GatherAndCount(reg, "identity_signups_total")
	require.NoError(t, err)
	require.Equal(t, 2, count, "one series per role")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `identity_signups_total{role="customer"} 2`)
	require.Contains(t, rec.Body.String(), `identity_code_deliveries_total{result="failed"} 1`)
	require.Contains(t, rec.Body.String(), `identity_codes_purged_total 3`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	require.NotPanics(t, func() {
		m.Signup("customer")
		m.Delivery(false)
		m.Verification("verified")
		m.Login("ok")
		m.CodesPurged(1)
	})

	h := m.Instrument("signup")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestMetrics_Instrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	h := m.Instrument("login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/login", nil))

	count, err := testutil.GatherAndCount(reg, "identity_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
