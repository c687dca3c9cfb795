package moderation

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/audit"
	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/user"
)

// Executor applies a punitive action to a target: mutate the entity, notify
// its owner, write one audit entry. The mutation is the source of truth —
// notify and audit are best-effort and never fail the operation. It is used
// both from the report flow and from direct admin endpoints (relatedReport
// absent there).
type Executor struct {
	postRepo    post.Repository
	commentRepo comment.Repository
	userRepo    user.Repository
	notifier    notification.Notifier
	recorder    audit.Recorder
}

// NewExecutor creates the moderation action executor
func NewExecutor(postRepo post.Repository, commentRepo comment.Repository, userRepo user.Repository, notifier notification.Notifier, recorder audit.Recorder) *Executor {
	return &Executor{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		recorder:    recorder,
	}
}

// Execute dispatches on the target discriminant, then on the action.
// Deletion paths notify the owner before the row disappears.
func (e *Executor) Execute(ctx context.Context, adminID uuid.UUID, target Target, action Action, reason string, relatedReport uuid.NullUUID) error {
	switch target.Type {
	case TargetPost:
		return e.executePost(ctx, adminID, target.ID, action, reason, relatedReport)
	case TargetUser:
		return e.executeUser(ctx, adminID, target.ID, action, reason, relatedReport)
	case TargetComment:
		return e.executeComment(ctx, adminID, target.ID, action, reason, relatedReport)
	default:
		return ErrUnsupportedAction
	}
}

func (e *Executor) executePost(ctx context.Context, adminID, postID uuid.UUID, action Action, reason string, relatedReport uuid.NullUUID) error {
	p, err := e.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrTargetNotFound
	}

	switch action {
	case ActionHideContent:
		if err := e.postRepo.SetHidden(ctx, postID, true); err != nil {
			return err
		}
		e.notify(ctx, p.UserID, adminID, notification.TypeContentHidden, reason, notification.PostRef(postID), relatedReport)
		e.record(ctx, adminID, audit.ActionPostHidden, audit.TargetPost, postID, reason, relatedReport)
		return nil

	case ActionDeleteContent:
		// Notify first: once the post row is gone the FK on post_id would
		// reject the notification.
		e.notify(ctx, p.UserID, adminID, notification.TypeContentDeleted, reason, uuid.NullUUID{}, relatedReport)
		if err := e.postRepo.Delete(ctx, postID); err != nil {
			return err
		}
		e.record(ctx, adminID, audit.ActionPostDeleted, audit.TargetPost, postID, reason, relatedReport)
		return nil

	default:
		return ErrUnsupportedAction
	}
}

func (e *Executor) executeUser(ctx context.Context, adminID, userID uuid.UUID, action Action, reason string, relatedReport uuid.NullUUID) error {
	u, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrTargetNotFound
	}

	switch action {
	case ActionWarning:
		e.notify(ctx, userID, adminID, notification.TypeWarning, reason, uuid.NullUUID{}, relatedReport)
		e.record(ctx, adminID, audit.ActionUserWarned, audit.TargetUser, userID, reason, relatedReport)
		return nil

	case ActionSuspendUser:
		if err := e.userRepo.UpdateSuspended(ctx, userID, true); err != nil {
			return err
		}
		e.notify(ctx, userID, adminID, notification.TypeAccountSuspended, reason, uuid.NullUUID{}, relatedReport)
		e.record(ctx, adminID, audit.ActionUserSuspended, audit.TargetUser, userID, reason, relatedReport)
		return nil

	case ActionBanUser:
		if err := e.userRepo.UpdateSuspended(ctx, userID, true); err != nil {
			return err
		}
		if err := e.userRepo.UpdateRole(ctx, userID, user.RoleBanned); err != nil {
			return err
		}
		e.notify(ctx, userID, adminID, notification.TypeAccountBanned, reason, uuid.NullUUID{}, relatedReport)
		e.record(ctx, adminID, audit.ActionUserBanned, audit.TargetUser, userID, reason, relatedReport)
		return nil

	default:
		return ErrUnsupportedAction
	}
}

func (e *Executor) executeComment(ctx context.Context, adminID, commentID uuid.UUID, action Action, reason string, relatedReport uuid.NullUUID) error {
	c, err := e.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrTargetNotFound
	}

	switch action {
	case ActionDeleteContent:
		e.notify(ctx, c.UserID, adminID, notification.TypeContentDeleted, reason, uuid.NullUUID{}, relatedReport)
		if err := e.commentRepo.Delete(ctx, commentID); err != nil {
			return err
		}
		e.record(ctx, adminID, audit.ActionCommentDeleted, audit.TargetComment, commentID, reason, relatedReport)
		return nil

	default:
		return ErrUnsupportedAction
	}
}

func (e *Executor) notify(ctx context.Context, toUser, adminID uuid.UUID, notifType notification.Type, reason string, postRef, reportRef uuid.NullUUID) {
	n := &notification.Notification{
		ToUserID:   toUser,
		FromUserID: adminID,
		Type:       notifType,
		PostID:     postRef,
		ReportID:   reportRef,
	}
	if reason != "" {
		n.Details = sql.NullString{String: reason, Valid: true}
	}
	e.notifier.Notify(ctx, n)
}

func (e *Executor) record(ctx context.Context, adminID uuid.UUID, action audit.Action, targetType audit.TargetType, targetID uuid.UUID, reason string, relatedReport uuid.NullUUID) {
	entry := &audit.Entry{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		ReportID:   relatedReport,
	}
	if reason != "" {
		entry.Reason = sql.NullString{String: reason, Valid: true}
	}
	e.recorder.Record(ctx, entry)
}
