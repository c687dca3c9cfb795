package reaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines reaction data access interface. Set is an upsert keyed
// on (entity, user): writing a like over a dislike replaces it in one
// statement, so mutual exclusion needs no read-modify-write.
type Repository interface {
	GetPostReaction(ctx context.Context, postID, userID uuid.UUID) (Kind, error)
	SetPostReaction(ctx context.Context, postID, userID uuid.UUID, kind Kind) error
	ClearPostReaction(ctx context.Context, postID, userID uuid.UUID) error
	PostCounts(ctx context.Context, postID uuid.UUID) (*Counts, error)

	GetCommentReaction(ctx context.Context, commentID, userID uuid.UUID) (Kind, error)
	SetCommentReaction(ctx context.Context, commentID, userID uuid.UUID, kind Kind) error
	ClearCommentReaction(ctx context.Context, commentID, userID uuid.UUID) error
	CommentCounts(ctx context.Context, commentID uuid.UUID) (*Counts, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new reaction repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetPostReaction(ctx context.Context, postID, userID uuid.UUID) (Kind, error) {
	var kind Kind
	err := r.db.GetContext(ctx, &kind, `SELECT kind FROM post_reactions WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return KindNone, nil
		}
		return KindNone, err
	}
	return kind, nil
}

func (r *repository) SetPostReaction(ctx context.Context, postID, userID uuid.UUID, kind Kind) error {
	query := `
		INSERT INTO post_reactions (post_id, user_id, kind, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (post_id, user_id) DO UPDATE SET kind = EXCLUDED.kind, created_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, postID, userID, kind)
	return err
}

func (r *repository) ClearPostReaction(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM post_reactions WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

func (r *repository) PostCounts(ctx context.Context, postID uuid.UUID) (*Counts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'like') AS likes,
			COUNT(*) FILTER (WHERE kind = 'dislike') AS dislikes
		FROM post_reactions WHERE post_id = $1
	`
	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query, postID); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *repository) GetCommentReaction(ctx context.Context, commentID, userID uuid.UUID) (Kind, error) {
	var kind Kind
	err := r.db.GetContext(ctx, &kind, `SELECT kind FROM comment_reactions WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return KindNone, nil
		}
		return KindNone, err
	}
	return kind, nil
}

func (r *repository) SetCommentReaction(ctx context.Context, commentID, userID uuid.UUID, kind Kind) error {
	query := `
		INSERT INTO comment_reactions (comment_id, user_id, kind, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (comment_id, user_id) DO UPDATE SET kind = EXCLUDED.kind, created_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, commentID, userID, kind)
	return err
}

func (r *repository) ClearCommentReaction(ctx context.Context, commentID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comment_reactions WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	return err
}

func (r *repository) CommentCounts(ctx context.Context, commentID uuid.UUID) (*Counts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'like') AS likes,
			COUNT(*) FILTER (WHERE kind = 'dislike') AS dislikes
		FROM comment_reactions WHERE comment_id = $1
	`
	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query, commentID); err != nil {
		return nil, err
	}
	return &counts, nil
}
