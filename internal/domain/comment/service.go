package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/user"
)

// Service handles comment business logic
type Service struct {
	repo     Repository
	postRepo post.Repository
	userRepo user.Repository
	notifier notification.Notifier
}

// NewService creates comment service
func NewService(repo Repository, postRepo post.Repository, userRepo user.Repository, notifier notification.Notifier) *Service {
	return &Service{
		repo:     repo,
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Create adds a comment to a post the actor can see. The post owner is
// notified unless they are the commenter.
func (s *Service) Create(ctx context.Context, actorID, postID uuid.UUID, req *CreateRequest, actorIsAdmin bool) (*Comment, error) {
	p, err := s.visiblePost(ctx, actorID, postID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    actorID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		parent, err := s.repo.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
		c.ParentID = uuid.NullUUID{UUID: parentID, Valid: true}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, &notification.Notification{
		ToUserID:   p.UserID,
		FromUserID: actorID,
		Type:       notification.TypeCommentPost,
		PostID:     notification.PostRef(postID),
		CommentID:  notification.CommentRef(c.ID),
	})

	return c, nil
}

// ListByPost returns a visible post's comments, oldest first
func (s *Service) ListByPost(ctx context.Context, actorID, postID uuid.UUID, actorIsAdmin bool, limit, offset int) ([]*ListItem, int, error) {
	if _, err := s.visiblePost(ctx, actorID, postID, actorIsAdmin); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByPost(ctx, postID, limit, offset)
}

// Delete removes a comment and its whole reply tree. Only the owner or an
// admin may delete.
func (s *Service) Delete(ctx context.Context, actorID, commentID uuid.UUID, actorIsAdmin bool) error {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if c.UserID != actorID && !actorIsAdmin {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, commentID)
}

// visiblePost loads a post and applies the public visibility filter for
// viewers other than the owner and admins.
func (s *Service) visiblePost(ctx context.Context, actorID, postID uuid.UUID, actorIsAdmin bool) (*post.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, post.ErrPostNotFound
	}
	if p.UserID == actorID || actorIsAdmin {
		return p, nil
	}
	if !p.IsPubliclyVisible(time.Now()) {
		return nil, post.ErrNotVisible
	}
	owner, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Suspended {
		return nil, post.ErrNotVisible
	}
	return p, nil
}
