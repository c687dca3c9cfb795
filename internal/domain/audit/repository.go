package audit

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines audit data access. Insert and read only: the log is
// append-only by construction.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new audit repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_logs (id, admin_id, action, target_type, target_id, reason, details, report_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.AdminID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Reason,
		entry.Details,
		entry.ReportID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit repository create: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Action != "" {
		where += fmt.Sprintf(` AND a.action = $%d`, argPos)
		args = append(args, filter.Action)
		argPos++
	}
	if filter.TargetType != "" {
		where += fmt.Sprintf(` AND a.target_type = $%d`, argPos)
		args = append(args, filter.TargetType)
		argPos++
	}
	if filter.AdminName != "" {
		where += fmt.Sprintf(` AND u.username ILIKE $%d`, argPos)
		args = append(args, "%"+filter.AdminName+"%")
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM audit_logs a JOIN users u ON a.admin_id = u.id` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.*, u.username AS admin_username
		FROM audit_logs a
		JOIN users u ON a.admin_id = u.id
	` + where + fmt.Sprintf(` ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var items []*ListItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := r.db.GetContext(ctx, &stats.Total, `SELECT COUNT(*) FROM audit_logs`); err != nil {
		return nil, err
	}

	byAction := `
		SELECT action, COUNT(*) AS count
		FROM audit_logs
		GROUP BY action
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &stats.ByAction, byAction); err != nil {
		return nil, err
	}

	topAdmins := `
		SELECT a.admin_id, u.username, COUNT(*) AS count
		FROM audit_logs a
		JOIN users u ON a.admin_id = u.id
		GROUP BY a.admin_id, u.username
		ORDER BY count DESC
		LIMIT 10
	`
	if err := r.db.SelectContext(ctx, &stats.TopAdmins, topAdmins); err != nil {
		return nil, err
	}

	recent := `SELECT COUNT(*) FROM audit_logs WHERE created_at >= NOW() - INTERVAL '7 days'`
	if err := r.db.GetContext(ctx, &stats.RecentCount, recent); err != nil {
		return nil, err
	}

	return stats, nil
}
