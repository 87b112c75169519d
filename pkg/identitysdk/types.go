package identitysdk

// ============================================================================
// Requests
// ============================================================================

// SignupRequest registers a new account. Name, Email, Password and Role are
// required; Role is "customer" or "provider".
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Mobile      string `json:"mobile,omitempty"`
	Address     string `json:"address,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	ServiceArea string `json:"serviceArea,omitempty"`
}

// LoginRequest checks the credentials of a verified account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTPRequest asks for a fresh one-time code.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest submits a one-time code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ============================================================================
// Responses
// ============================================================================

// User is the public view of an account. It never carries the password hash
// or a one-time code.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Verified    bool   `json:"verified"`
	Mobile      string `json:"mobile"`
	Address     string `json:"address"`
	ServiceType string `json:"service_type"`
	ServiceArea string `json:"service_area"`

	// Status is "active" for customers and "pending" for providers awaiting
	// approval.
	Status string `json:"status"`
}

// AccountResponse is returned by signup, login and user lookup.
type AccountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// MessageResponse is returned by send-otp and verify-otp.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool `json:"success"`

	// Message is human readable and may change between releases
	Message string `json:"message"`

	// Error is the stable machine-readable kind (e.g. "invalid_code")
	Error string `json:"error"`
}

// BannerResponse is served at the root path.
type BannerResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by /health, /livez and /readyz (readyz includes the Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains the status of individual dependencies (only in readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the account store connection status
	Database string `json:"database"`
}
