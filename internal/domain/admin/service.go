package admin

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/audit"
	"github.com/feedline/feedline-api/internal/domain/moderation"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/user"
)

// Service implements direct admin actions taken outside the report flow.
// Punitive paths (suspend, hide, delete content) go through the moderation
// executor so the notify+audit contract is identical, just without a related
// report.
type Service struct {
	userRepo user.Repository
	postRepo post.Repository
	notifier notification.Notifier
	recorder audit.Recorder
	executor *moderation.Executor
}

// NewService creates admin service
func NewService(userRepo user.Repository, postRepo post.Repository, notifier notification.Notifier, recorder audit.Recorder, executor *moderation.Executor) *Service {
	return &Service{
		userRepo: userRepo,
		postRepo: postRepo,
		notifier: notifier,
		recorder: recorder,
		executor: executor,
	}
}

// ListUsers returns the paginated account listing for the moderation UI
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateRole changes a user's role, notifies them and audits the change
func (s *Service) UpdateRole(ctx context.Context, adminID, userID uuid.UUID, role user.Role, reason string) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	n := &notification.Notification{
		ToUserID:   userID,
		FromUserID: adminID,
		Type:       notification.TypeRoleChanged,
		Details:    sql.NullString{String: string(role), Valid: true},
	}
	s.notifier.Notify(ctx, n)

	s.recorder.Record(ctx, &audit.Entry{
		AdminID:    adminID,
		Action:     audit.ActionRoleChanged,
		TargetType: audit.TargetUser,
		TargetID:   userID,
		Reason:     nullString(reason),
		Details:    sql.NullString{String: string(u.Role) + " -> " + string(role), Valid: true},
	})
	return nil
}

// SetSuspended suspends or unsuspends a user. Suspension reuses the
// executor's suspend path; lifting it audits but does not notify.
func (s *Service) SetSuspended(ctx context.Context, adminID, userID uuid.UUID, suspended bool, reason string) error {
	if suspended {
		err := s.executor.Execute(ctx, adminID, moderation.Target{Type: moderation.TargetUser, ID: userID}, moderation.ActionSuspendUser, reason, uuid.NullUUID{})
		if err == moderation.ErrTargetNotFound {
			return user.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.UpdateSuspended(ctx, userID, false); err != nil {
		return err
	}
	s.recorder.Record(ctx, &audit.Entry{
		AdminID:    adminID,
		Action:     audit.ActionUserUnsuspended,
		TargetType: audit.TargetUser,
		TargetID:   userID,
		Reason:     nullString(reason),
	})
	return nil
}

// DeleteUser removes an account and everything it owns. No notification: the
// recipient record would be cascaded away with the user anyway.
func (s *Service) DeleteUser(ctx context.Context, adminID, userID uuid.UUID, reason string) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.recorder.Record(ctx, &audit.Entry{
		AdminID:    adminID,
		Action:     audit.ActionUserDeleted,
		TargetType: audit.TargetUser,
		TargetID:   userID,
		Reason:     nullString(reason),
		Details:    sql.NullString{String: u.Username, Valid: true},
	})
	return nil
}

// SetPostHidden hides or unhides a post directly
func (s *Service) SetPostHidden(ctx context.Context, adminID, postID uuid.UUID, hidden bool, reason string) error {
	if hidden {
		err := s.executor.Execute(ctx, adminID, moderation.Target{Type: moderation.TargetPost, ID: postID}, moderation.ActionHideContent, reason, uuid.NullUUID{})
		if err == moderation.ErrTargetNotFound {
			return post.ErrPostNotFound
		}
		return err
	}

	if err := s.postRepo.SetHidden(ctx, postID, false); err != nil {
		return err
	}
	s.recorder.Record(ctx, &audit.Entry{
		AdminID:    adminID,
		Action:     audit.ActionPostUnhidden,
		TargetType: audit.TargetPost,
		TargetID:   postID,
		Reason:     nullString(reason),
	})
	return nil
}

// DeletePost removes a post through the executor's delete path
func (s *Service) DeletePost(ctx context.Context, adminID, postID uuid.UUID, reason string) error {
	err := s.executor.Execute(ctx, adminID, moderation.Target{Type: moderation.TargetPost, ID: postID}, moderation.ActionDeleteContent, reason, uuid.NullUUID{})
	if err == moderation.ErrTargetNotFound {
		return post.ErrPostNotFound
	}
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
