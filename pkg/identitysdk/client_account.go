package identitysdk

import (
	"context"
	"net/http"
	"net/url"
)

// Signup registers an account. The returned message tells whether the code
// was delivered; the account exists either way.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*AccountResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiPath("/signup"), req)
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login checks credentials. No session token is issued.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiPath("/login"), LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.User, nil
}

// SendOTP asks for a fresh code for an unverified account.
func (c *SDKClient) SendOTP(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiPath("/send-otp"), SendOTPRequest{Email: email})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// VerifyOTP submits a code and marks the account verified.
func (c *SDKClient) VerifyOTP(ctx context.Context, email, code string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, c.apiPath("/verify-otp"), VerifyOTPRequest{Email: email, OTP: code})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// GetUser fetches the public view of an account by id.
func (c *SDKClient) GetUser(ctx context.Context, id string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.apiPath("/users/"+url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.User, nil
}
