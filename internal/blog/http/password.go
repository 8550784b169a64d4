package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jotterlabs/jotter/internal/blog/service"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

type ChangePasswordHandler struct {
	AuthService *service.AuthService
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ServeHTTP handles POST /v1/auth/change-password
//
//	@Summary		Change the authenticated account's password
//	@Description	The current password must verify before the new one is accepted. No confirmation field.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Success		204
//	@Failure		400	{object}	map[string]any	"field-keyed validation errors"
//	@Failure		401	{object}	apierr.APIError	"invalid_credentials"
//	@Router			/v1/auth/change-password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.ChangePassword(ctx, accountID, req.OldPassword, req.NewPassword); err != nil {
		var fieldErrs apierr.FieldErrors
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apierr.ErrInvalidCredentials.WriteError(w)
		case errors.As(err, &fieldErrs):
			fieldErrs.WriteError(w)
		default:
			username, _ := httpx.UsernameFromContext(ctx)
			log.Error("password change failed", "account_id", accountID, "username", username, "err", err)
			apierr.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
