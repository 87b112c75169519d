package http

import (
	"net/http"

	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/identitysdk"
)

type LoginHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Log In
//	@Description	Check the password of a verified account and return its public view.
//	@Description	Unverified accounts are rejected before the password is checked. No token is issued.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	identitysdk.AccountResponse	"success, message, user"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"email or password missing"
//	@Failure		401		{object}	identitysdk.ErrorResponse	"not verified or invalid password"
//	@Failure		404		{object}	identitysdk.ErrorResponse	"user not found"
//	@Failure		429		{object}	identitysdk.ErrorResponse	"rate limit exceeded"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	user, err := h.IdentityService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.AccountResponse{
		Success: true,
		Message: "Login successful",
		User:    toUser(user),
	})
}
