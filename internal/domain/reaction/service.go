package reaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
)

// Service implements the reaction toggle: pressing the same kind again turns
// it off, pressing the other kind switches over.
type Service struct {
	repo        Repository
	postRepo    post.Repository
	commentRepo comment.Repository
	notifier    notification.Notifier
}

// NewService creates reaction service
func NewService(repo Repository, postRepo post.Repository, commentRepo comment.Repository, notifier notification.Notifier) *Service {
	return &Service{
		repo:        repo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

// TogglePost toggles the actor's reaction on a post and returns the new
// tally. The post owner is notified only on the none-to-reaction transition,
// not on toggle-off and not when switching kinds.
func (s *Service) TogglePost(ctx context.Context, actorID, postID uuid.UUID, kind Kind) (*Counts, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, post.ErrPostNotFound
	}

	current, err := s.repo.GetPostReaction(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	if current == kind {
		if err := s.repo.ClearPostReaction(ctx, postID, actorID); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.SetPostReaction(ctx, postID, actorID, kind); err != nil {
			return nil, err
		}
		if current == KindNone {
			notifType := notification.TypeLikePost
			if kind == KindDislike {
				notifType = notification.TypeDislikePost
			}
			s.notifier.Notify(ctx, &notification.Notification{
				ToUserID:   p.UserID,
				FromUserID: actorID,
				Type:       notifType,
				PostID:     notification.PostRef(postID),
			})
		}
	}

	return s.repo.PostCounts(ctx, postID)
}

// ToggleComment toggles the actor's reaction on a comment. Comment reactions
// never notify.
func (s *Service) ToggleComment(ctx context.Context, actorID, commentID uuid.UUID, kind Kind) (*Counts, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, comment.ErrCommentNotFound
	}

	current, err := s.repo.GetCommentReaction(ctx, commentID, actorID)
	if err != nil {
		return nil, err
	}

	if current == kind {
		if err := s.repo.ClearCommentReaction(ctx, commentID, actorID); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.SetCommentReaction(ctx, commentID, actorID, kind); err != nil {
			return nil, err
		}
	}

	return s.repo.CommentCounts(ctx, commentID)
}
