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

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles POST /v1/auth/login
//
//	@Summary		Log in with email and password
//	@Description	Unknown email and wrong password return the same error; a disabled account is only reported after the credential verified.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	tokenResponse
//	@Failure		401	{object}	apierr.APIError	"invalid_credentials"
//	@Failure		403	{object}	apierr.APIError	"account_disabled"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	account, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apierr.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrAccountDisabled):
			apierr.ErrAccountDisabled.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			apierr.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccountID:   account.ID,
		Username:    account.Username,
		Email:       account.Email,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTTL(h.AuthService).Seconds()),
	})
}
