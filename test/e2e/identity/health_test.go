package identity_test

import (
	"testing"

	"github.com/aussiebroadwan/localserve/pkg/identitysdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the probes on a fresh instance.
func TestHealthEndpoints(t *testing.T) {
	c := setupIdentityContainer(t)
	client := identitysdk.NewSDKClient(c.BaseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.Equal(t, "ok", health.Checks.Database)
}
