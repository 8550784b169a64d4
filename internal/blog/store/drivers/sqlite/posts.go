package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
)

type postsRepo struct {
	db dbtx
}

const postColumns = `id, author_id, title, content, published, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Content,
		&p.Published,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func collectPosts(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)

	p, err := scanPost(row)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) GetPostByIDForAuthor(ctx context.Context, id, authorID string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ? AND author_id = ?`, id, authorID)

	p, err := scanPost(row)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) ListPublishedPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (r *postsRepo) ListPostsByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE author_id = ? ORDER BY created_at DESC, id DESC`,
		authorID)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, content, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Title, p.Content, p.Published, now, now,
	)
	return mapConstraint(err)
}

func (r *postsRepo) UpdatePost(ctx context.Context, id, authorID string, patch domain.PostPatch) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET
			title      = COALESCE(?, title),
			content    = COALESCE(?, content),
			published  = COALESCE(?, published),
			updated_at = ?
		 WHERE id = ? AND author_id = ?`,
		patch.Title, patch.Content, patch.Published,
		time.Now().UTC(), id, authorID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *postsRepo) DeletePost(ctx context.Context, id, authorID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ? AND author_id = ?`, id, authorID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
