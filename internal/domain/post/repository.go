package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines post data access interface
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	Update(ctx context.Context, post *Post) error
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
	SetMediaKey(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublic(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Post, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new post repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, content, type, media_key, status, scheduled_at, hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.UserID,
		post.Title,
		post.Content,
		post.Type,
		post.MediaKey,
		post.Status,
		post.ScheduledAt,
		post.Hidden,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("post repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	query := `SELECT * FROM posts WHERE id = $1`
	var post Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *repository) Update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, status = $4, scheduled_at = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Status,
		post.ScheduledAt,
	)
	return err
}

func (r *repository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	query := `UPDATE posts SET hidden = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, hidden)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *repository) SetMediaKey(ctx context.Context, id uuid.UUID, key string) error {
	query := `UPDATE posts SET media_key = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, key)
	return err
}

// Delete removes a post. Its comments and reactions are removed by
// ON DELETE CASCADE foreign keys.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ListPublic returns the public listing: published (or scheduled and due)
// posts that are not hidden, whose owner is not suspended.
func (r *repository) ListPublic(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error) {
	where := `
		WHERE p.hidden = false
		  AND u.suspended = false
		  AND (p.status = 'published' OR (p.status = 'scheduled' AND p.scheduled_at <= NOW()))
	`
	args := []interface{}{}
	argPos := 1

	if filter.AuthorID != "" {
		where += fmt.Sprintf(` AND p.user_id = $%d`, argPos)
		args = append(args, filter.AuthorID)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM posts p JOIN users u ON p.user_id = u.id ` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT p.*,
		       u.username AS author_username,
		       (SELECT COUNT(*) FROM post_reactions pr WHERE pr.post_id = p.id AND pr.kind = 'like') AS like_count,
		       (SELECT COUNT(*) FROM post_reactions pr WHERE pr.post_id = p.id AND pr.kind = 'dislike') AS dislike_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		JOIN users u ON p.user_id = u.id
	` + where + ` ORDER BY p.created_at DESC`

	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var items []*ListItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListByOwner returns all of a user's own posts regardless of visibility
func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Post, error) {
	query := `SELECT * FROM posts WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var posts []*Post
	err := r.db.SelectContext(ctx, &posts, query, ownerID, limit, offset)
	return posts, err
}
