package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestNew_WiresSQLiteAndLogNotifier(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		APIBasePath:          "/api",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		OTPRetention:         24 * time.Hour,
		OTPTTL:               5 * time.Minute,
		OTPDigits:            6,
		NotifyTimeout:        time.Second,
		StoreDriver:          DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "identity.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Notifier:             NotifierLog,
	}

	application, err := New(cfg)
	require.NoError(t, err)
	require.FileExists(t, cfg.PepperFile)

	rec := httptest.NewRecorder()
	application.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	application.housekeepingService.Start()
	require.NoError(t, application.Shutdown())
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{StoreDriver: "redis", Notifier: NotifierLog, OTPDigits: 6, OTPTTL: time.Minute})
	require.ErrorContains(t, err, "invalid configuration")
}
