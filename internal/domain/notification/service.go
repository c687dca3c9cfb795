package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/pkg/sideeffect"
)

// Notifier is the fan-out entry point other domains call. Delivery is
// best-effort: a failed write is logged and swallowed so the primary
// mutation (follow, reaction, moderation action) never fails because of it.
type Notifier interface {
	Notify(ctx context.Context, n *Notification)
}

// Service handles notification logic
type Service struct {
	repo     Repository
	cache    *Cache
	realtime *Hub
}

// NewService creates notification service
func NewService(repo Repository, cache *Cache, realtime *Hub) *Service {
	return &Service{repo: repo, cache: cache, realtime: realtime}
}

// Notify inserts one record addressed to a single recipient. Self-notification
// is suppressed: an actor never gets notified about their own action.
func (s *Service) Notify(ctx context.Context, n *Notification) {
	if n.ToUserID == n.FromUserID {
		return
	}

	n.ID = uuid.New()
	n.IsRead = false
	n.CreatedAt = time.Now()

	sideeffect.Run(ctx, "notification_create", func(ctx context.Context) error {
		if err := s.repo.Create(ctx, n); err != nil {
			return err
		}

		s.cache.IncrUnread(ctx, n.ToUserID)

		if s.realtime != nil {
			payload, err := json.Marshal(map[string]interface{}{
				"type": "notification:new",
				"data": n,
			})
			if err == nil {
				s.realtime.Push(n.ToUserID, payload)
			}
		}
		return nil
	})
}

// List returns the recipient's notifications, newest first, with the unread
// counter.
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int, int, error) {
	list, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, ok := s.cache.GetUnread(ctx, userID)
	if !ok {
		unread, err = s.repo.CountUnread(ctx, userID)
		if err != nil {
			return nil, 0, 0, err
		}
		s.cache.SetUnread(ctx, userID, unread)
	}

	return list, total, unread, nil
}

// UnreadCount returns the unread counter alone
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if unread, ok := s.cache.GetUnread(ctx, userID); ok {
		return unread, nil
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.cache.SetUnread(ctx, userID, unread)
	return unread, nil
}

// MarkRead marks one notification read, recipient-scoped
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// MarkAllRead marks all of the recipient's notifications read
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.cache.SetUnread(ctx, userID, 0)
	return nil
}

// Delete removes one notification, recipient-scoped
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// DeleteAll removes all of the recipient's notifications
func (s *Service) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return err
	}
	s.cache.SetUnread(ctx, userID, 0)
	return nil
}
