package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	items     map[uuid.UUID]*Notification
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*Notification)}
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *n
	f.items[n.ID] = &cp
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*Notification, int, error) {
	var out []*Notification
	for _, n := range f.items {
		if n.ToUserID == userID {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.items {
		if n.ToUserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	n, ok := f.items[id]
	if !ok || n.ToUserID != userID {
		return ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (f *fakeRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, n := range f.items {
		if n.ToUserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	n, ok := f.items[id]
	if !ok || n.ToUserID != userID {
		return ErrNotificationNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) DeleteAll(_ context.Context, userID uuid.UUID) error {
	for id, n := range f.items {
		if n.ToUserID == userID {
			delete(f.items, id)
		}
	}
	return nil
}

// newTestService runs with a nil redis client so the cache is pass-through
// and every counter read falls back to the repository.
func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, NewCache(nil), nil), repo
}

func TestNotifyStoresRecord(t *testing.T) {
	svc, repo := newTestService()
	to, from := uuid.New(), uuid.New()

	svc.Notify(context.Background(), &Notification{
		ToUserID:   to,
		FromUserID: from,
		Type:       TypeFollow,
	})

	if len(repo.items) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(repo.items))
	}
	for _, n := range repo.items {
		if n.ID == uuid.Nil {
			t.Fatal("notification stored without an ID")
		}
		if n.IsRead {
			t.Fatal("new notification stored as read")
		}
		if n.CreatedAt.IsZero() {
			t.Fatal("created_at not set")
		}
	}
}

func TestNotifySuppressesSelf(t *testing.T) {
	svc, repo := newTestService()
	actor := uuid.New()

	svc.Notify(context.Background(), &Notification{
		ToUserID:   actor,
		FromUserID: actor,
		Type:       TypeLikePost,
	})

	if len(repo.items) != 0 {
		t.Fatalf("self-notification stored: %+v", repo.items)
	}
}

func TestNotifySwallowsRepoFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.createErr = errors.New("db down")

	// Must not panic or surface the error to the caller.
	svc.Notify(context.Background(), &Notification{
		ToUserID:   uuid.New(),
		FromUserID: uuid.New(),
		Type:       TypeCommentPost,
	})

	if len(repo.items) != 0 {
		t.Fatal("record stored despite create failure")
	}
}

func TestListFallsBackToRepoUnreadCount(t *testing.T) {
	svc, repo := newTestService()
	to := uuid.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.Notify(ctx, &Notification{ToUserID: to, FromUserID: uuid.New(), Type: TypeFollow})
	}

	list, total, unread, err := svc.List(ctx, to, 20, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("total = %d, len = %d, want 3", total, len(list))
	}
	if unread != 3 {
		t.Fatalf("unread = %d, want 3", unread)
	}

	// Mark one read through the service, the counter must follow.
	var first uuid.UUID
	for id := range repo.items {
		first = id
		break
	}
	if err := svc.MarkRead(ctx, first, to); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if unread, err = svc.UnreadCount(ctx, to); err != nil || unread != 2 {
		t.Fatalf("UnreadCount() = %d, %v, want 2", unread, err)
	}
}

func TestMarkReadIsRecipientScoped(t *testing.T) {
	svc, repo := newTestService()
	to := uuid.New()
	ctx := context.Background()

	svc.Notify(ctx, &Notification{ToUserID: to, FromUserID: uuid.New(), Type: TypeWarning})

	var id uuid.UUID
	for nid := range repo.items {
		id = nid
	}

	if err := svc.MarkRead(ctx, id, uuid.New()); err != ErrNotificationNotFound {
		t.Fatalf("MarkRead() by stranger error = %v, want ErrNotificationNotFound", err)
	}
	if repo.items[id].IsRead {
		t.Fatal("stranger marked another user's notification read")
	}
}

func TestDeleteIsRecipientScoped(t *testing.T) {
	svc, repo := newTestService()
	to := uuid.New()
	ctx := context.Background()

	svc.Notify(ctx, &Notification{ToUserID: to, FromUserID: uuid.New(), Type: TypeContentHidden})

	var id uuid.UUID
	for nid := range repo.items {
		id = nid
	}

	if err := svc.Delete(ctx, id, uuid.New()); err != ErrNotificationNotFound {
		t.Fatalf("Delete() by stranger error = %v, want ErrNotificationNotFound", err)
	}
	if err := svc.Delete(ctx, id, to); err != nil {
		t.Fatalf("Delete() by recipient error = %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("notification still present after recipient delete")
	}
}

func TestMarkAllReadZeroesCounter(t *testing.T) {
	svc, _ := newTestService()
	to := uuid.New()
	ctx := context.Background()

	svc.Notify(ctx, &Notification{ToUserID: to, FromUserID: uuid.New(), Type: TypeFollow})
	svc.Notify(ctx, &Notification{ToUserID: to, FromUserID: uuid.New(), Type: TypeLikePost})

	if err := svc.MarkAllRead(ctx, to); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}

	unread, err := svc.UnreadCount(ctx, to)
	if err != nil || unread != 0 {
		t.Fatalf("UnreadCount() = %d, %v, want 0", unread, err)
	}
}
