package social

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/user"
)

// Service handles social graph logic
type Service struct {
	repo     Repository
	userRepo user.Repository
	notifier notification.Notifier
}

// NewService creates social service
func NewService(repo Repository, userRepo user.Repository, notifier notification.Notifier) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Follow creates the follow edge. Following an already-followed user is a
// no-op success; only a newly created edge notifies the target. Returns the
// target's follower count and the actor's following count.
func (s *Service) Follow(ctx context.Context, actorID, targetID uuid.UUID) (followers, following int, err error) {
	if actorID == targetID {
		return 0, 0, ErrSelfFollowNotAllowed
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return 0, 0, err
	}
	if target == nil {
		return 0, 0, ErrTargetNotFound
	}

	created, err := s.repo.Follow(ctx, actorID, targetID)
	if err != nil {
		return 0, 0, err
	}

	if created {
		s.notifier.Notify(ctx, &notification.Notification{
			ToUserID:   targetID,
			FromUserID: actorID,
			Type:       notification.TypeFollow,
		})
	}

	return s.counts(ctx, actorID, targetID)
}

// Unfollow removes the follow edge. Unfollowing a user who was never
// followed is a no-op success, and no notification is emitted either way.
func (s *Service) Unfollow(ctx context.Context, actorID, targetID uuid.UUID) (followers, following int, err error) {
	if actorID == targetID {
		return 0, 0, ErrSelfFollowNotAllowed
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return 0, 0, err
	}
	if target == nil {
		return 0, 0, ErrTargetNotFound
	}

	if _, err := s.repo.Unfollow(ctx, actorID, targetID); err != nil {
		return 0, 0, err
	}

	return s.counts(ctx, actorID, targetID)
}

func (s *Service) counts(ctx context.Context, actorID, targetID uuid.UUID) (int, int, error) {
	targetCounts, err := s.repo.Counts(ctx, targetID)
	if err != nil {
		return 0, 0, err
	}
	actorCounts, err := s.repo.Counts(ctx, actorID)
	if err != nil {
		return 0, 0, err
	}
	return targetCounts.Followers, actorCounts.Following, nil
}

// ListFollowers returns the target's followers enriched relative to the viewer
func (s *Service) ListFollowers(ctx context.Context, targetID, viewerID uuid.UUID, viewerIsAdmin bool, limit, offset int) ([]*ListItem, error) {
	if err := s.targetExists(ctx, targetID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListFollowers(ctx, targetID, viewerID, viewerIsAdmin, limit, offset)
}

// ListFollowing returns who the target follows enriched relative to the viewer
func (s *Service) ListFollowing(ctx context.Context, targetID, viewerID uuid.UUID, viewerIsAdmin bool, limit, offset int) ([]*ListItem, error) {
	if err := s.targetExists(ctx, targetID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListFollowing(ctx, targetID, viewerID, viewerIsAdmin, limit, offset)
}

func (s *Service) targetExists(ctx context.Context, targetID uuid.UUID) error {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrTargetNotFound
	}
	return nil
}
