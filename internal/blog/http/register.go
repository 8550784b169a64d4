package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/service"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/jwtx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type tokenResponse struct {
	AccountID   string `json:"account_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ServeHTTP handles POST /v1/auth/register
//
//	@Summary		Register a new account
//	@Description	Validates the payload, creates the account and returns an access token (registration doubles as the first login).
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	tokenResponse
//	@Failure		400	{object}	map[string]any	"field-keyed validation errors"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	account, token, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		var fieldErrs apierr.FieldErrors
		if errors.As(err, &fieldErrs) {
			fieldErrs.WriteError(w)
			return
		}
		log.Error("registration failed", "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tokenResponse{
		AccountID:   account.ID,
		Username:    account.Username,
		Email:       account.Email,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTTL(h.AuthService).Seconds()),
	})
}

func accessTTL(s *service.AuthService) time.Duration {
	if s.AccessTTL != 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}
