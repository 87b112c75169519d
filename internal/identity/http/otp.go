package http

import (
	"net/http"

	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/identitysdk"
)

type SendOTPHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Resend Code
//	@Description	Replace the pending code of an unverified account and email the new one.
//	@Tags			Verification
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.SendOTPRequest	true	"Account email"
//	@Success		200		{object}	identitysdk.MessageResponse	"success, message"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"email missing or already verified"
//	@Failure		404		{object}	identitysdk.ErrorResponse	"user not found"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"delivery failed"
//	@Router			/api/send-otp [post].
func (h *SendOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.SendOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	if err := h.IdentityService.ResendOTP(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{
		Success: true,
		Message: "OTP sent successfully",
	})
}

type VerifyOTPHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Verify Code
//	@Description	Consume a pending code and mark the account verified. Codes are single use.
//	@Tags			Verification
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.VerifyOTPRequest	true	"Account email and code"
//	@Success		200		{object}	identitysdk.MessageResponse		"success, message"
//	@Failure		400		{object}	identitysdk.ErrorResponse		"missing input, invalid or expired code"
//	@Router			/api/verify-otp [post].
func (h *VerifyOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	err := h.IdentityService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if service.Kind(err) == service.KindNoSuchAccount {
		// Unknown addresses look like a wrong code
		httpx.WriteFailure(w, http.StatusBadRequest, service.KindInvalidCode, defaultMessages[service.KindInvalidCode])
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{
		Success: true,
		Message: "Email verified successfully! You can now login.",
	})
}
