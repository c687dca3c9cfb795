package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/pkg/sideeffect"
)

// Recorder is the write side other domains call. Like notifications, audit
// writes are best-effort: a failed insert is logged and swallowed so the
// moderation mutation itself is never rolled back or failed by it.
type Recorder interface {
	Record(ctx context.Context, entry *Entry)
}

// Service handles audit log logic
type Service struct {
	repo Repository
}

// NewService creates audit service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one entry
func (s *Service) Record(ctx context.Context, entry *Entry) {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()

	sideeffect.Run(ctx, "audit_create", func(ctx context.Context) error {
		return s.repo.Create(ctx, entry)
	})
}

// List returns the filtered audit listing
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Stats returns the aggregate view
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
