package http

import (
	"net/http"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/identitysdk"
)

type SignupHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Register Account
//	@Description	Create an unverified account and email it a one-time code valid for five minutes.
//	@Description	A failed delivery still creates the account; the message says so.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.SignupRequest	true	"Profile and password"
//	@Success		201		{object}	identitysdk.AccountResponse	"success, message, user"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"missing field or email already registered"
//	@Failure		429		{object}	identitysdk.ErrorResponse	"rate limit exceeded"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"server error"
//	@Router			/api/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	res, err := h.IdentityService.Signup(r.Context(), service.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Mobile:      req.Mobile,
		Address:     req.Address,
		ServiceType: req.ServiceType,
		ServiceArea: req.ServiceArea,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identitysdk.AccountResponse{
		Success: true,
		Message: res.Message,
		User:    toUser(res.Account),
	})
}

func toUser(p domain.Projection) *identitysdk.User {
	return &identitysdk.User{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Role:        string(p.Role),
		Verified:    p.Verified,
		Mobile:      p.Mobile,
		Address:     p.Address,
		ServiceType: p.ServiceType,
		ServiceArea: p.ServiceArea,
		Status:      string(p.Status),
	}
}
