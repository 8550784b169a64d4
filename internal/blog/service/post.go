package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/internal/blog/validate"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/jotterlabs/jotter/pkg/idx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

// ErrPostNotFound covers both a genuinely missing post and a post owned by
// someone else. The two cases are deliberately indistinguishable.
var ErrPostNotFound = errors.New("post not found")

// PostService implements post submission, listing, update and delete.
type PostService struct {
	Store store.Store
}

const (
	msgTitleTooShort   = "Title must be at least 5 characters long"
	msgContentTooShort = "Content must be at least 10 characters long"
)

// Create validates title and content and inserts the post. The author is
// always the requesting identity; the payload cannot override it.
func (s *PostService) Create(ctx context.Context, authorID, title, content string, published bool) (domain.Post, error) {
	log := slogx.FromContext(ctx)

	fieldErrs := apierr.FieldErrors{}
	if err := validate.PostTitle(title); err != nil {
		fieldErrs.Add("title", msgTitleTooShort)
	}
	if err := validate.PostContent(content); err != nil {
		fieldErrs.Add("content", msgContentTooShort)
	}
	if fieldErrs.HasErrors() {
		return domain.Post{}, fieldErrs
	}

	post := domain.Post{
		ID:        idx.New().String(),
		AuthorID:  authorID,
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Published: published,
	}

	if err := s.Store.Posts().CreatePost(ctx, post); err != nil {
		log.Error("failed to create post", slog.String("author_id", authorID), slog.Any("error", err))
		return domain.Post{}, err
	}

	log.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", authorID),
		slog.Bool("published", published),
	)

	// Re-read so the caller sees the stored timestamps.
	return s.Store.Posts().GetPostByID(ctx, post.ID)
}

// ListPublished returns the public listing: published posts only.
func (s *PostService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return s.Store.Posts().ListPublishedPosts(ctx)
}

// ListMine returns every post of the requesting identity, drafts included.
func (s *PostService) ListMine(ctx context.Context, authorID string) ([]domain.Post, error) {
	return s.Store.Posts().ListPostsByAuthor(ctx, authorID)
}

// Get returns a single post scoped to its author. Someone else's post is
// reported as not found.
func (s *PostService) Get(ctx context.Context, id, authorID string) (domain.Post, error) {
	post, err := s.Store.Posts().GetPostByIDForAuthor(ctx, id, authorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return post, nil
}

// Update applies a partial update scoped to the author. Present fields are
// validated; absent ones are left untouched.
func (s *PostService) Update(ctx context.Context, id, authorID string, patch domain.PostPatch) (domain.Post, error) {
	log := slogx.FromContext(ctx)

	fieldErrs := apierr.FieldErrors{}
	if patch.Title != nil {
		if err := validate.PostTitle(*patch.Title); err != nil {
			fieldErrs.Add("title", msgTitleTooShort)
		} else {
			trimmed := strings.TrimSpace(*patch.Title)
			patch.Title = &trimmed
		}
	}
	if patch.Content != nil {
		if err := validate.PostContent(*patch.Content); err != nil {
			fieldErrs.Add("content", msgContentTooShort)
		} else {
			trimmed := strings.TrimSpace(*patch.Content)
			patch.Content = &trimmed
		}
	}
	if fieldErrs.HasErrors() {
		return domain.Post{}, fieldErrs
	}

	if err := s.Store.Posts().UpdatePost(ctx, id, authorID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		log.Error("failed to update post", slog.String("post_id", id), slog.Any("error", err))
		return domain.Post{}, err
	}

	log.Info("post updated", slog.String("post_id", id), slog.String("author_id", authorID))
	return s.Store.Posts().GetPostByID(ctx, id)
}

// Delete removes the post scoped to the author.
func (s *PostService) Delete(ctx context.Context, id, authorID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Posts().DeletePost(ctx, id, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		log.Error("failed to delete post", slog.String("post_id", id), slog.Any("error", err))
		return err
	}

	log.Info("post deleted", slog.String("post_id", id), slog.String("author_id", authorID))
	return nil
}
