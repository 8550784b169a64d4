package service

import (
	"context"
	"testing"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/pkg/apierr"
	"github.com/stretchr/testify/require"
)

func TestPostCreate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	authSvc := newTestAuthService(t, st)
	svc := &PostService{Store: st}

	author := registerAccount(t, authSvc, "frank", "frank@example.com")

	t.Run("short title and content collect field errors", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, "hey", "too short", true)

		var fieldErrs apierr.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "title")
		require.Contains(t, fieldErrs, "content")
	})

	t.Run("whitespace does not count toward minimums", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, "   ab   ", "         x         ", true)

		var fieldErrs apierr.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "title")
		require.Contains(t, fieldErrs, "content")
	})

	t.Run("valid post is stored trimmed with the caller as author", func(t *testing.T) {
		post, err := svc.Create(ctx, author.ID, "  First post  ", "  Hello from the test suite.  ", false)
		require.NoError(t, err)
		require.Equal(t, "First post", post.Title)
		require.Equal(t, "Hello from the test suite.", post.Content)
		require.Equal(t, author.ID, post.AuthorID)
		require.False(t, post.Published)
		require.False(t, post.CreatedAt.IsZero())
	})
}

func TestPostVisibility(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	authSvc := newTestAuthService(t, st)
	svc := &PostService{Store: st}

	alice := registerAccount(t, authSvc, "alice", "alice@example.com")
	bob := registerAccount(t, authSvc, "bob", "bob@example.com")

	alicePublished, err := svc.Create(ctx, alice.ID, "Alice speaks", "A published post by alice.", true)
	require.NoError(t, err)
	aliceDraft, err := svc.Create(ctx, alice.ID, "Alice drafts", "An unpublished post by alice.", false)
	require.NoError(t, err)
	bobPublished, err := svc.Create(ctx, bob.ID, "Bob speaks", "A published post by bob.", true)
	require.NoError(t, err)

	t.Run("public listing shows published posts from every author", func(t *testing.T) {
		posts, err := svc.ListPublished(ctx)
		require.NoError(t, err)

		ids := postIDs(posts)
		require.Contains(t, ids, alicePublished.ID)
		require.Contains(t, ids, bobPublished.ID)
		require.NotContains(t, ids, aliceDraft.ID)
	})

	t.Run("my-posts includes drafts but only the caller's posts", func(t *testing.T) {
		posts, err := svc.ListMine(ctx, alice.ID)
		require.NoError(t, err)

		ids := postIDs(posts)
		require.Contains(t, ids, alicePublished.ID)
		require.Contains(t, ids, aliceDraft.ID)
		require.NotContains(t, ids, bobPublished.ID)
	})

	t.Run("fetching someone else's post is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, bobPublished.ID, alice.ID)
		require.ErrorIs(t, err, ErrPostNotFound)

		post, err := svc.Get(ctx, bobPublished.ID, bob.ID)
		require.NoError(t, err)
		require.Equal(t, bobPublished.ID, post.ID)
	})
}

func TestPostUpdate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	authSvc := newTestAuthService(t, st)
	svc := &PostService{Store: st}

	alice := registerAccount(t, authSvc, "alice", "alice@example.com")
	bob := registerAccount(t, authSvc, "bob", "bob@example.com")

	post, err := svc.Create(ctx, alice.ID, "Original title", "Original content here.", false)
	require.NoError(t, err)

	t.Run("partial update leaves absent fields untouched", func(t *testing.T) {
		title := "Updated title"
		updated, err := svc.Update(ctx, post.ID, alice.ID, domain.PostPatch{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Updated title", updated.Title)
		require.Equal(t, "Original content here.", updated.Content)
		require.False(t, updated.Published)
	})

	t.Run("publishing flips the flag without touching text", func(t *testing.T) {
		published := true
		updated, err := svc.Update(ctx, post.ID, alice.ID, domain.PostPatch{Published: &published})
		require.NoError(t, err)
		require.True(t, updated.Published)
		require.Equal(t, "Updated title", updated.Title)
	})

	t.Run("present fields are validated", func(t *testing.T) {
		title := "nah"
		_, err := svc.Update(ctx, post.ID, alice.ID, domain.PostPatch{Title: &title})

		var fieldErrs apierr.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "title")
	})

	t.Run("updating someone else's post is not found", func(t *testing.T) {
		title := "Hijacked title"
		_, err := svc.Update(ctx, post.ID, bob.ID, domain.PostPatch{Title: &title})
		require.ErrorIs(t, err, ErrPostNotFound)

		// The post must be unchanged afterwards.
		got, err := svc.Get(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "Updated title", got.Title)
	})
}

func TestPostDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	authSvc := newTestAuthService(t, st)
	svc := &PostService{Store: st}

	alice := registerAccount(t, authSvc, "alice", "alice@example.com")
	bob := registerAccount(t, authSvc, "bob", "bob@example.com")

	post, err := svc.Create(ctx, alice.ID, "Doomed post", "This post will be deleted.", true)
	require.NoError(t, err)

	t.Run("deleting someone else's post is not found", func(t *testing.T) {
		err := svc.Delete(ctx, post.ID, bob.ID)
		require.ErrorIs(t, err, ErrPostNotFound)

		_, err = svc.Get(ctx, post.ID, alice.ID)
		require.NoError(t, err)
	})

	t.Run("author can delete, second delete is not found", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, post.ID, alice.ID))

		err := svc.Delete(ctx, post.ID, alice.ID)
		require.ErrorIs(t, err, ErrPostNotFound)
	})
}

func postIDs(posts []domain.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
