package social

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/user"
)

type edge struct {
	follower uuid.UUID
	followee uuid.UUID
}

type fakeRepo struct {
	edges map[edge]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{edges: make(map[edge]bool)}
}

func (f *fakeRepo) Follow(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	e := edge{followerID, followeeID}
	if f.edges[e] {
		return false, nil
	}
	f.edges[e] = true
	return true, nil
}

func (f *fakeRepo) Unfollow(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	e := edge{followerID, followeeID}
	if !f.edges[e] {
		return false, nil
	}
	delete(f.edges, e)
	return true, nil
}

func (f *fakeRepo) Counts(_ context.Context, userID uuid.UUID) (*Counts, error) {
	c := &Counts{}
	for e := range f.edges {
		if e.followee == userID {
			c.Followers++
		}
		if e.follower == userID {
			c.Following++
		}
	}
	return c, nil
}

func (f *fakeRepo) ListFollowers(_ context.Context, targetID, _ uuid.UUID, _ bool, _, _ int) ([]*ListItem, error) {
	var items []*ListItem
	for e := range f.edges {
		if e.followee == targetID {
			items = append(items, &ListItem{ID: e.follower})
		}
	}
	return items, nil
}

func (f *fakeRepo) ListFollowing(_ context.Context, targetID, _ uuid.UUID, _ bool, _, _ int) ([]*ListItem, error) {
	var items []*ListItem
	for e := range f.edges {
		if e.follower == targetID {
			items = append(items, &ListItem{ID: e.followee})
		}
	}
	return items, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*user.User, error) { return nil, nil }

func (f *fakeUserRepo) GetByUsername(_ context.Context, _ string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role user.Role) error {
	f.users[id].Role = role
	return nil
}

func (f *fakeUserRepo) UpdateSuspended(_ context.Context, id uuid.UUID, suspended bool) error {
	f.users[id].Suspended = suspended
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*user.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) ListAdminIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, u := range f.users {
		if u.Role == user.RoleAdmin {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeNotifier struct {
	sent []*notification.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n *notification.Notification) {
	if n.ToUserID == n.FromUserID {
		return
	}
	f.sent = append(f.sent, n)
}

func newTestService(users ...*user.User) (*Service, *fakeRepo, *fakeNotifier) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	return NewService(repo, newFakeUserRepo(users...), notifier), repo, notifier
}

func TestFollowCreatesEdgeAndNotifies(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Username: "alice", Role: user.RoleUser}
	bob := &user.User{ID: uuid.New(), Username: "bob", Role: user.RoleUser}
	svc, repo, notifier := newTestService(alice, bob)

	followers, following, err := svc.Follow(context.Background(), alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if followers != 1 || following != 1 {
		t.Fatalf("Follow() counts = (%d, %d), want (1, 1)", followers, following)
	}
	if !repo.edges[edge{alice.ID, bob.ID}] {
		t.Fatal("Follow() did not create the edge")
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("Follow() sent %d notifications, want 1", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.ToUserID != bob.ID || n.FromUserID != alice.ID || n.Type != notification.TypeFollow {
		t.Fatalf("Follow() notification = %+v, want follow to bob from alice", n)
	}
}

func TestFollowIsIdempotent(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Role: user.RoleUser}
	bob := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, repo, notifier := newTestService(alice, bob)

	if _, _, err := svc.Follow(context.Background(), alice.ID, bob.ID); err != nil {
		t.Fatalf("first Follow() error = %v", err)
	}
	followers, following, err := svc.Follow(context.Background(), alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("second Follow() error = %v", err)
	}
	if followers != 1 || following != 1 {
		t.Fatalf("second Follow() counts = (%d, %d), want (1, 1)", followers, following)
	}
	if len(repo.edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(repo.edges))
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("re-follow sent %d notifications, want 1 total", len(notifier.sent))
	}
}

func TestFollowSymmetry(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Role: user.RoleUser}
	bob := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, _, _ := newTestService(alice, bob)
	ctx := context.Background()

	// Any sequence of follow/unfollow keeps both directions of the
	// relationship in agreement, since the edge is a single row.
	steps := []func() (int, int, error){
		func() (int, int, error) { return svc.Follow(ctx, alice.ID, bob.ID) },
		func() (int, int, error) { return svc.Follow(ctx, bob.ID, alice.ID) },
		func() (int, int, error) { return svc.Unfollow(ctx, alice.ID, bob.ID) },
		func() (int, int, error) { return svc.Follow(ctx, alice.ID, bob.ID) },
	}
	for i, step := range steps {
		if _, _, err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}

		bobFollowers, err := svc.ListFollowers(ctx, bob.ID, alice.ID, false, 50, 0)
		if err != nil {
			t.Fatalf("ListFollowers() error = %v", err)
		}
		aliceFollowing, err := svc.ListFollowing(ctx, alice.ID, alice.ID, false, 50, 0)
		if err != nil {
			t.Fatalf("ListFollowing() error = %v", err)
		}

		if containsID(bobFollowers, alice.ID) != containsID(aliceFollowing, bob.ID) {
			t.Fatalf("step %d: follower/following views disagree", i)
		}
	}
}

func TestSelfFollowRejected(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, _, _ := newTestService(alice)

	if _, _, err := svc.Follow(context.Background(), alice.ID, alice.ID); err != ErrSelfFollowNotAllowed {
		t.Fatalf("Follow(self) error = %v, want ErrSelfFollowNotAllowed", err)
	}
	if _, _, err := svc.Unfollow(context.Background(), alice.ID, alice.ID); err != ErrSelfFollowNotAllowed {
		t.Fatalf("Unfollow(self) error = %v, want ErrSelfFollowNotAllowed", err)
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, _, _ := newTestService(alice)

	if _, _, err := svc.Follow(context.Background(), alice.ID, uuid.New()); err != ErrTargetNotFound {
		t.Fatalf("Follow(unknown) error = %v, want ErrTargetNotFound", err)
	}
}

func TestUnfollowNotFollowedIsNoop(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Role: user.RoleUser}
	bob := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, _, notifier := newTestService(alice, bob)

	followers, following, err := svc.Unfollow(context.Background(), alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Unfollow() error = %v, want no-op success", err)
	}
	if followers != 0 || following != 0 {
		t.Fatalf("Unfollow() counts = (%d, %d), want (0, 0)", followers, following)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("Unfollow() sent %d notifications, want 0", len(notifier.sent))
	}
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Role: user.RoleUser}
	bob := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, repo, _ := newTestService(alice, bob)
	ctx := context.Background()

	if _, _, err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	followers, following, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}
	if followers != 0 || following != 0 {
		t.Fatalf("counts after round trip = (%d, %d), want (0, 0)", followers, following)
	}
	if len(repo.edges) != 0 {
		t.Fatalf("edge count after round trip = %d, want 0", len(repo.edges))
	}
}

func containsID(items []*ListItem, id uuid.UUID) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
