package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines report data access interface
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	Update(ctx context.Context, report *Report) error
	Exists(ctx context.Context, reporterID uuid.UUID, target Target) (bool, error)
	List(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a report. The unique constraint on (reporter_id,
// target_type, target_id) backs the one-report-per-target rule even when
// two requests race past the Exists check.
func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, target_type, target_id, reason, description, status, action_taken, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ReporterID,
		report.TargetType,
		report.TargetID,
		report.Reason,
		report.Description,
		report.Status,
		report.ActionTaken,
		report.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateReport
		}
		return fmt.Errorf("report repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// Update writes the admin-mutable fields. Last write wins: two admins
// racing on the same report is not guarded by a version check.
func (r *repository) Update(ctx context.Context, report *Report) error {
	query := `
		UPDATE reports
		SET status = $2, moderator_id = $3, moderation_notes = $4, action_taken = $5, reviewed_at = $6, resolved_at = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.Status,
		report.ModeratorID,
		report.ModerationNotes,
		report.ActionTaken,
		report.ReviewedAt,
		report.ResolvedAt,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *repository) Exists(ctx context.Context, reporterID uuid.UUID, target Target) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND target_type = $2 AND target_id = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, reporterID, target.Type, target.ID)
	return exists, err
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		where += fmt.Sprintf(` AND r.status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Reason != "" {
		where += fmt.Sprintf(` AND r.reason = $%d`, argPos)
		args = append(args, filter.Reason)
		argPos++
	}
	if filter.TargetType != "" {
		where += fmt.Sprintf(` AND r.target_type = $%d`, argPos)
		args = append(args, filter.TargetType)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM reports r` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT r.*,
		       ru.username AS reporter_username,
		       mu.username AS moderator_username
		FROM reports r
		JOIN users ru ON r.reporter_id = ru.id
		LEFT JOIN users mu ON r.moderator_id = mu.id
	` + where + fmt.Sprintf(` ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var items []*ListItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := r.db.GetContext(ctx, &stats.Total, `SELECT COUNT(*) FROM reports`); err != nil {
		return nil, err
	}

	byStatus := `SELECT status, COUNT(*) AS count FROM reports GROUP BY status ORDER BY count DESC`
	if err := r.db.SelectContext(ctx, &stats.ByStatus, byStatus); err != nil {
		return nil, err
	}

	byReason := `SELECT reason, COUNT(*) AS count FROM reports GROUP BY reason ORDER BY count DESC`
	if err := r.db.SelectContext(ctx, &stats.ByReason, byReason); err != nil {
		return nil, err
	}

	recent := `SELECT COUNT(*) FROM reports WHERE created_at >= NOW() - INTERVAL '7 days'`
	if err := r.db.GetContext(ctx, &stats.RecentCount, recent); err != nil {
		return nil, err
	}

	return stats, nil
}
