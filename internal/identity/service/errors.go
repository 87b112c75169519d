package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrNoSuchAccount   = errors.New("no such account")
	ErrMalformedID     = errors.New("malformed account id")
	ErrAlreadyVerified = errors.New("email already verified")
	ErrNotVerified     = errors.New("email not verified")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidCode     = errors.New("invalid one-time code")
	ErrExpiredCode     = errors.New("one-time code has expired")
	ErrNotifierFailure = errors.New("notifier failure")
)

// ValidationError reports client-fixable input problems. Field names the
// first offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// Stable machine-readable error kinds reported to callers.
const (
	KindValidation      = "validation_error"
	KindDuplicateEmail  = "duplicate_email"
	KindNoSuchAccount   = "no_such_account"
	KindNotVerified     = "not_verified"
	KindAlreadyVerified = "already_verified"
	KindInvalidPassword = "invalid_password"
	KindInvalidCode     = "invalid_code"
	KindExpiredCode     = "expired_code"
	KindNotifierFailure = "notifier_failure"
	KindServerError     = "server_error"
)

// Kind classifies err. Anything unrecognised, store failures included, is
// KindServerError. A nil error has no kind.
func Kind(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve), errors.Is(err, ErrMalformedID):
		return KindValidation
	case errors.Is(err, ErrDuplicateEmail):
		return KindDuplicateEmail
	case errors.Is(err, ErrNoSuchAccount):
		return KindNoSuchAccount
	case errors.Is(err, ErrNotVerified):
		return KindNotVerified
	case errors.Is(err, ErrAlreadyVerified):
		return KindAlreadyVerified
	case errors.Is(err, ErrInvalidPassword):
		return KindInvalidPassword
	case errors.Is(err, ErrInvalidCode):
		return KindInvalidCode
	case errors.Is(err, ErrExpiredCode):
		return KindExpiredCode
	case errors.Is(err, ErrNotifierFailure):
		return KindNotifierFailure
	default:
		return KindServerError
	}
}
