package social

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines follow-edge data access interface
type Repository interface {
	// Follow inserts the edge and reports whether it was newly created.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	// Unfollow removes the edge and reports whether it existed.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Counts(ctx context.Context, userID uuid.UUID) (*Counts, error)
	ListFollowers(ctx context.Context, targetID, viewerID uuid.UUID, includeAdmins bool, limit, offset int) ([]*ListItem, error)
	ListFollowing(ctx context.Context, targetID, viewerID uuid.UUID, includeAdmins bool, limit, offset int) ([]*ListItem, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new social repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Follow is idempotent: re-following an already-followed user hits the
// primary key conflict and affects zero rows.
func (r *repository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Counts(ctx context.Context, userID uuid.UUID) (*Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following
	`
	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query, userID); err != nil {
		return nil, err
	}
	return &counts, nil
}

// ListFollowers returns users following the target. Suspended users are
// always excluded; admin accounts only show up when includeAdmins is set
// (the viewer is an admin themselves).
func (r *repository) ListFollowers(ctx context.Context, targetID, viewerID uuid.UUID, includeAdmins bool, limit, offset int) ([]*ListItem, error) {
	query := `
		SELECT u.id, u.username, u.avatar_url,
		       EXISTS (
		           SELECT 1 FROM follows vf
		           WHERE vf.follower_id = $2 AND vf.followee_id = u.id
		       ) AS is_following
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followee_id = $1
		  AND u.suspended = false
		  AND ($3 OR u.role <> 'admin')
		ORDER BY f.created_at DESC
		LIMIT $4 OFFSET $5
	`
	var items []*ListItem
	err := r.db.SelectContext(ctx, &items, query, targetID, viewerID, includeAdmins, limit, offset)
	return items, err
}

// ListFollowing returns users the target follows, with the same visibility
// filter as ListFollowers.
func (r *repository) ListFollowing(ctx context.Context, targetID, viewerID uuid.UUID, includeAdmins bool, limit, offset int) ([]*ListItem, error) {
	query := `
		SELECT u.id, u.username, u.avatar_url,
		       EXISTS (
		           SELECT 1 FROM follows vf
		           WHERE vf.follower_id = $2 AND vf.followee_id = u.id
		       ) AS is_following
		FROM follows f
		JOIN users u ON f.followee_id = u.id
		WHERE f.follower_id = $1
		  AND u.suspended = false
		  AND ($3 OR u.role <> 'admin')
		ORDER BY f.created_at DESC
		LIMIT $4 OFFSET $5
	`
	var items []*ListItem
	err := r.db.SelectContext(ctx, &items, query, targetID, viewerID, includeAdmins, limit, offset)
	return items, err
}
