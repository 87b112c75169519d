package http

import (
	"net/http"

	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/slogx"
)

// Default human-readable messages per error kind. Handlers override the ones
// whose wording differs per route.
var defaultMessages = map[string]string{
	service.KindDuplicateEmail:  "Email already registered",
	service.KindNoSuchAccount:   "User not found",
	service.KindNotVerified:     "Please verify your email first.",
	service.KindAlreadyVerified: "Email already verified",
	service.KindInvalidPassword: "Invalid password",
	service.KindInvalidCode:     "Invalid OTP",
	service.KindExpiredCode:     "OTP has expired",
	service.KindNotifierFailure: "Failed to send OTP email",
	service.KindServerError:     "Internal server error",
}

// statusFor maps a service error kind onto an HTTP status.
func statusFor(kind string) int {
	switch kind {
	case service.KindValidation,
		service.KindDuplicateEmail,
		service.KindAlreadyVerified,
		service.KindInvalidCode,
		service.KindExpiredCode:
		return http.StatusBadRequest
	case service.KindNoSuchAccount:
		return http.StatusNotFound
	case service.KindNotVerified, service.KindInvalidPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err as a failure envelope. Only validation
// messages come from the error itself; store and relay errors are logged and
// never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.Kind(err)

	var message string
	switch kind {
	case service.KindValidation:
		message = err.Error()
	case service.KindServerError, service.KindNotifierFailure:
		slogx.FromContext(r.Context()).Error("request failed", "kind", kind, "err", err)
		message = defaultMessages[kind]
	default:
		message = defaultMessages[kind]
	}

	httpx.WriteFailure(w, statusFor(kind), kind, message)
}

// writeBadBody reports an undecodable JSON body.
func writeBadBody(w http.ResponseWriter) {
	httpx.WriteFailure(w, http.StatusBadRequest, service.KindValidation, "Invalid JSON body")
}
