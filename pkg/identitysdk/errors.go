package identitysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error kinds reported in ErrorResponse.Error.
const (
	KindValidation        = "validation_error"
	KindDuplicateEmail    = "duplicate_email"
	KindNoSuchAccount     = "no_such_account"
	KindNotVerified       = "not_verified"
	KindAlreadyVerified   = "already_verified"
	KindInvalidPassword   = "invalid_password"
	KindInvalidCode       = "invalid_code"
	KindExpiredCode       = "expired_code"
	KindNotifierFailure   = "notifier_failure"
	KindServerError       = "server_error"
	KindRateLimitExceeded = "rate_limit_exceeded"
)

// APIError is a failed request as reported by the service.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// parseErrorResponse turns a non-success response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       errResp.Error,
			Message:    errResp.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
