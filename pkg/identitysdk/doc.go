/*
Package identitysdk is a client for the local services identity API.

Create a client and walk an account through registration:

	client := identitysdk.NewSDKClient("http://localhost:5000")

	_, err := client.Signup(ctx, identitysdk.SignupRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret",
		Role:     "customer",
	})

	// The code arrives by email
	err = client.VerifyOTP(ctx, "ana@example.com", code)

	user, err := client.Login(ctx, "ana@example.com", "secret")

Login issues no token. Collaborating services hold on to User.ID and resolve
it later with GetUser.

# Error Handling

Every non-success response becomes an *APIError carrying the HTTP status and
a stable Kind:

	err := client.VerifyOTP(ctx, email, code)
	if identitysdk.IsKind(err, identitysdk.KindExpiredCode) {
		_ = client.SendOTP(ctx, email)
	}
*/
package identitysdk
