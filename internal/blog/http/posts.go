package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/service"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

// PostsHandler handles all post endpoints.
type PostsHandler struct {
	PostService *service.PostService
}

type postCreateRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
}

type postUpdateRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

type postResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPostResponse(p domain.Post) postResponse {
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		AuthorID:    p.AuthorID,
		IsPublished: p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPostResponses(posts []domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

// HandleList handles GET /v1/posts
//
//	@Summary		List published posts
//	@Description	The public listing shows published posts from every author. Drafts never appear here.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	postResponse
//	@Router			/v1/posts [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	posts, err := h.PostService.ListPublished(ctx)
	if err != nil {
		log.Error("failed to list posts", "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponses(posts))
}

// HandleListMine handles GET /v1/my-posts
//
//	@Summary		List the authenticated account's posts
//	@Description	Returns the caller's posts regardless of published state.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	postResponse
//	@Router			/v1/my-posts [get].
func (h *PostsHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	posts, err := h.PostService.ListMine(ctx, accountID)
	if err != nil {
		log.Error("failed to list own posts", "account_id", accountID, "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponses(posts))
}

// HandleCreate handles POST /v1/posts
//
//	@Summary		Create a post
//	@Description	The author is always the authenticated account; the payload cannot override it.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	postResponse
//	@Failure		400	{object}	map[string]any	"field-keyed validation errors"
//	@Router			/v1/posts [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	var req postCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	post, err := h.PostService.Create(ctx, accountID, req.Title, req.Content, req.IsPublished)
	if err != nil {
		var fieldErrs apierr.FieldErrors
		if errors.As(err, &fieldErrs) {
			fieldErrs.WriteError(w)
			return
		}
		log.Error("failed to create post", "account_id", accountID, "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

// HandleGet handles GET /v1/posts/{id}
//
//	@Summary		Get one of the authenticated account's posts
//	@Description	Scoped to the caller's own posts; someone else's post is a 404, not a 403.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	postResponse
//	@Failure		404	{object}	apierr.APIError
//	@Router			/v1/posts/{id} [get].
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	post, err := h.PostService.Get(ctx, r.PathValue("id"), accountID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apierr.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to fetch post", "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

// HandleUpdate handles PUT /v1/posts/{id}
//
//	@Summary		Update one of the authenticated account's posts
//	@Description	Partial update of title, content and is_published. Absent fields are untouched.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	postResponse
//	@Failure		400	{object}	map[string]any	"field-keyed validation errors"
//	@Failure		404	{object}	apierr.APIError
//	@Router			/v1/posts/{id} [put].
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	var req postUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.ErrInvalidRequest.WriteError(w)
		return
	}

	post, err := h.PostService.Update(ctx, r.PathValue("id"), accountID, domain.PostPatch{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.IsPublished,
	})
	if err != nil {
		var fieldErrs apierr.FieldErrors
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			apierr.ErrNotFound.WriteError(w)
		case errors.As(err, &fieldErrs):
			fieldErrs.WriteError(w)
		default:
			log.Error("failed to update post", "err", err)
			apierr.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

// HandleDelete handles DELETE /v1/posts/{id}
//
//	@Summary		Delete one of the authenticated account's posts
//	@Tags			Posts
//	@Security		BearerAuth
//	@Success		204
//	@Failure		404	{object}	apierr.APIError
//	@Router			/v1/posts/{id} [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		apierr.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.PostService.Delete(ctx, r.PathValue("id"), accountID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apierr.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to delete post", "err", err)
		apierr.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
