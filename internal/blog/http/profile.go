package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/service"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
	AccountService *service.AccountService
}

type profileResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	BirthDate string `json:"birth_date"`
	Avatar    string `json:"avatar"`
}

type profileUpdateRequest struct {
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	BirthDate *string `json:"birth_date"`
	Avatar    *string `json:"avatar"`
}

// HandleGet handles GET /v1/auth/profile
//
//	@Summary		Get the authenticated account's profile
//	@Description	Creates an empty profile on first access (fetch-or-create). Username and email are read-only and come from the account.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	profileResponse
//	@Router			/v1/auth/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	profile, err := h.ProfileService.GetOrCreate(ctx, accountID)
	if err != nil {
		log.Error("failed to load profile", "account_id", accountID, "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	h.writeProfile(w, r, accountID, profile)
}

// HandlePut handles PUT /v1/auth/profile
//
//	@Summary		Partially update the authenticated account's profile
//	@Description	Absent fields are left untouched. birth_date must be YYYY-MM-DD when present.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	profileResponse
//	@Failure		400	{object}	map[string]any	"field-keyed validation errors"
//	@Router			/v1/auth/profile [put].
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	profile, err := h.ProfileService.Update(ctx, accountID, domain.ProfilePatch{
		Bio:       req.Bio,
		Location:  req.Location,
		BirthDate: req.BirthDate,
		Avatar:    req.Avatar,
	})
	if err != nil {
		var fieldErrs apierr.FieldErrors
		if errors.As(err, &fieldErrs) {
			fieldErrs.WriteError(w)
			return
		}
		log.Error("failed to update profile", "account_id", accountID, "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	h.writeProfile(w, r, accountID, profile)
}

func (h *ProfileHandler) writeProfile(w http.ResponseWriter, r *http.Request, accountID string, profile domain.Profile) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	account, err := h.AccountService.GetAccountByID(ctx, accountID)
	if err != nil {
		log.Error("failed to load account", "account_id", accountID, "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileResponse{
		Username:  account.Username,
		Email:     account.Email,
		Bio:       profile.Bio,
		Location:  profile.Location,
		BirthDate: profile.BirthDate,
		Avatar:    profile.Avatar,
	})
}
