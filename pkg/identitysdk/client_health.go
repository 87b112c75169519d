package identitysdk

import (
	"context"
	"net/http"
)

// GetLiveness reports whether the process is up. It never touches the store.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/livez")
}

// GetReadiness reports whether the service can reach its account store. A
// 503 comes back as an *APIError.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *SDKClient) probe(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	health := new(HealthResponse)
	if err := decodeJSON(resp, health, http.StatusOK); err != nil {
		return nil, err
	}
	return health, nil
}
