package moderation

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/audit"
	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/user"
)

// Service handles report intake and the admin review flow
type Service struct {
	repo        Repository
	postRepo    post.Repository
	commentRepo comment.Repository
	userRepo    user.Repository
	notifier    notification.Notifier
	recorder    audit.Recorder
	executor    *Executor
}

// NewService creates moderation service
func NewService(repo Repository, postRepo post.Repository, commentRepo comment.Repository, userRepo user.Repository, notifier notification.Notifier, recorder audit.Recorder, executor *Executor) *Service {
	return &Service{
		repo:        repo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		recorder:    recorder,
		executor:    executor,
	}
}

// CreateReport files a pending report and fans out one notification per
// admin account. A reporter gets one report per target, ever — terminal
// reports block re-reporting too.
func (s *Service) CreateReport(ctx context.Context, reporterID uuid.UUID, req *CreateReportRequest) (*Report, error) {
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, ErrTargetNotFound
	}
	target := Target{Type: TargetType(req.TargetType), ID: targetID}

	if err := s.targetExists(ctx, target); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, reporterID, target)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReport
	}

	report := &Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		TargetType:  target.Type,
		TargetID:    target.ID,
		Reason:      Reason(req.Reason),
		Status:      StatusPending,
		ActionTaken: ActionNone,
		CreatedAt:   time.Now(),
	}
	if req.Description != "" {
		report.Description = sql.NullString{String: req.Description, Valid: true}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	adminIDs, err := s.userRepo.ListAdminIDs(ctx)
	if err == nil {
		for _, adminID := range adminIDs {
			s.notifier.Notify(ctx, &notification.Notification{
				ToUserID:   adminID,
				FromUserID: reporterID,
				Type:       notification.TypeReportReceived,
				ReportID:   notification.ReportRef(report.ID),
			})
		}
	}

	return report, nil
}

// GetReport returns one report
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// ListReports returns the moderation queue
func (s *Service) ListReports(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Stats returns aggregate report counts
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// UpdateReport applies a partial admin update. reviewedAt and resolvedAt are
// set exactly once, the first time the matching state is entered. One
// report_reviewed audit entry is written for every update; a non-none
// actionTaken additionally runs the executor synchronously before returning.
func (s *Service) UpdateReport(ctx context.Context, adminID, reportID uuid.UUID, req *UpdateReportRequest) (*Report, error) {
	report, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	now := time.Now()

	if req.Status != nil {
		status := Status(*req.Status)
		report.Status = status
		if status == StatusReviewing && !report.ReviewedAt.Valid {
			report.ReviewedAt = sql.NullTime{Time: now, Valid: true}
		}
		if status.IsTerminal() && !report.ResolvedAt.Valid {
			report.ResolvedAt = sql.NullTime{Time: now, Valid: true}
		}
	}
	if req.ModerationNotes != nil {
		report.ModerationNotes = sql.NullString{String: *req.ModerationNotes, Valid: true}
	}
	if req.ActionTaken != nil && *req.ActionTaken != "" {
		report.ActionTaken = Action(*req.ActionTaken)
	}
	report.ModeratorID = uuid.NullUUID{UUID: adminID, Valid: true}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}

	entry := &audit.Entry{
		AdminID:    adminID,
		Action:     audit.ActionReportReviewed,
		TargetType: audit.TargetReport,
		TargetID:   report.ID,
		ReportID:   uuid.NullUUID{UUID: report.ID, Valid: true},
	}
	if report.ModerationNotes.Valid {
		entry.Details = report.ModerationNotes
	}
	s.recorder.Record(ctx, entry)

	if req.ActionTaken != nil && report.ActionTaken != ActionNone && *req.ActionTaken != string(ActionNone) {
		notes := ""
		if report.ModerationNotes.Valid {
			notes = report.ModerationNotes.String
		}
		related := uuid.NullUUID{UUID: report.ID, Valid: true}
		if err := s.executor.Execute(ctx, adminID, report.Target(), report.ActionTaken, notes, related); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (s *Service) targetExists(ctx context.Context, target Target) error {
	switch target.Type {
	case TargetPost:
		p, err := s.postRepo.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrTargetNotFound
		}
	case TargetUser:
		u, err := s.userRepo.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrTargetNotFound
		}
	case TargetComment:
		c, err := s.commentRepo.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrTargetNotFound
		}
	default:
		return ErrTargetNotFound
	}
	return nil
}
