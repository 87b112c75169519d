package http

import (
	"net/http"

	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/identitysdk"
)

type UserHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP godoc
//
//	@Summary		Get User
//	@Description	Resolve an account id to its public view, for collaborating services.
//	@Tags			Accounts
//	@Produce		json
//	@Param			id	path		string						true	"Account id"
//	@Success		200	{object}	identitysdk.AccountResponse	"success, user"
//	@Failure		400	{object}	identitysdk.ErrorResponse	"malformed id"
//	@Failure		404	{object}	identitysdk.ErrorResponse	"user not found"
//	@Router			/api/users/{id} [get].
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := h.IdentityService.Lookup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.AccountResponse{
		Success: true,
		User:    toUser(user),
	})
}
