package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/audit"
	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/moderation"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
	"github.com/feedline/feedline-api/internal/domain/user"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
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
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) UpdateSuspended(_ context.Context, id uuid.UUID, suspended bool) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Suspended = suspended
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*user.User, int, error) {
	var out []*user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) ListAdminIDs(_ context.Context) ([]uuid.UUID, error) { return nil, nil }

type fakePostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func (f *fakePostRepo) Create(_ context.Context, p *post.Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) Update(_ context.Context, _ *post.Post) error { return nil }

func (f *fakePostRepo) SetHidden(_ context.Context, id uuid.UUID, hidden bool) error {
	p, ok := f.posts[id]
	if !ok {
		return post.ErrPostNotFound
	}
	p.Hidden = hidden
	return nil
}

func (f *fakePostRepo) SetMediaKey(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (f *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ListPublic(_ context.Context, _ *post.ListFilter) ([]*post.ListItem, int, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) ListByOwner(_ context.Context, _ uuid.UUID, _, _ int) ([]*post.Post, error) {
	return nil, nil
}

type fakeCommentRepo struct{}

func (f *fakeCommentRepo) Create(_ context.Context, _ *comment.Comment) error { return nil }

func (f *fakeCommentRepo) GetByID(_ context.Context, _ uuid.UUID) (*comment.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeCommentRepo) ListByPost(_ context.Context, _ uuid.UUID, _, _ int) ([]*comment.ListItem, int, error) {
	return nil, 0, nil
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

type fakeRecorder struct {
	entries []*audit.Entry
}

func (f *fakeRecorder) Record(_ context.Context, e *audit.Entry) {
	f.entries = append(f.entries, e)
}

func newTestService(users []*user.User, posts []*post.Post) (*Service, *fakeUserRepo, *fakePostRepo, *fakeNotifier, *fakeRecorder) {
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	postRepo := &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
	for _, p := range posts {
		postRepo.posts[p.ID] = p
	}
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}
	executor := moderation.NewExecutor(postRepo, &fakeCommentRepo{}, userRepo, notifier, recorder)
	return NewService(userRepo, postRepo, notifier, recorder, executor), userRepo, postRepo, notifier, recorder
}

func TestDirectSuspendAppliesContractWithoutReport(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	target := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, _, _, notifier, recorder := newTestService([]*user.User{admin, target}, nil)

	if err := svc.SetSuspended(context.Background(), admin.ID, target.ID, true, "ToS violation"); err != nil {
		t.Fatalf("SetSuspended() error = %v", err)
	}

	if !target.Suspended {
		t.Fatal("target not suspended")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != notification.TypeAccountSuspended {
		t.Fatalf("notifications = %+v, want one account_suspended", notifier.sent)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionUserSuspended {
		t.Fatalf("audits = %+v, want one user_suspended", recorder.entries)
	}
	if recorder.entries[0].ReportID.Valid {
		t.Fatal("direct action carries a related report, want none")
	}
}

func TestUnsuspendAuditsWithoutNotifying(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	target := &user.User{ID: uuid.New(), Role: user.RoleUser, Suspended: true}
	svc, _, _, notifier, recorder := newTestService([]*user.User{admin, target}, nil)

	if err := svc.SetSuspended(context.Background(), admin.ID, target.ID, false, ""); err != nil {
		t.Fatalf("SetSuspended(false) error = %v", err)
	}

	if target.Suspended {
		t.Fatal("target still suspended")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("unsuspend sent %d notifications, want 0", len(notifier.sent))
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionUserUnsuspended {
		t.Fatalf("audits = %+v, want one user_unsuspended", recorder.entries)
	}
}

func TestUpdateRoleNotifiesAndAudits(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	target := &user.User{ID: uuid.New(), Role: user.RoleUser}
	svc, _, _, notifier, recorder := newTestService([]*user.User{admin, target}, nil)

	if err := svc.UpdateRole(context.Background(), admin.ID, target.ID, user.RoleAdmin, "promotion"); err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}

	if target.Role != user.RoleAdmin {
		t.Fatalf("role = %s, want admin", target.Role)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != notification.TypeRoleChanged {
		t.Fatalf("notifications = %+v, want one role_changed", notifier.sent)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionRoleChanged {
		t.Fatalf("audits = %+v, want one role_changed", recorder.entries)
	}
}

func TestDeleteUserAuditsWithoutNotifying(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	target := &user.User{ID: uuid.New(), Username: "gone", Role: user.RoleUser}
	svc, userRepo, _, notifier, recorder := newTestService([]*user.User{admin, target}, nil)

	if err := svc.DeleteUser(context.Background(), admin.ID, target.ID, "spam account"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	if _, ok := userRepo.users[target.ID]; ok {
		t.Fatal("user still present")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("delete sent %d notifications, want 0", len(notifier.sent))
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionUserDeleted {
		t.Fatalf("audits = %+v, want one user_deleted", recorder.entries)
	}
}

func TestHideAndUnhidePost(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	owner := &user.User{ID: uuid.New(), Role: user.RoleUser}
	p := &post.Post{ID: uuid.New(), UserID: owner.ID}
	svc, _, _, notifier, recorder := newTestService([]*user.User{admin, owner}, []*post.Post{p})
	ctx := context.Background()

	if err := svc.SetPostHidden(ctx, admin.ID, p.ID, true, "reported offsite"); err != nil {
		t.Fatalf("SetPostHidden(true) error = %v", err)
	}
	if !p.Hidden {
		t.Fatal("post not hidden")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != notification.TypeContentHidden {
		t.Fatalf("notifications = %+v, want one content_hidden", notifier.sent)
	}

	if err := svc.SetPostHidden(ctx, admin.ID, p.ID, false, ""); err != nil {
		t.Fatalf("SetPostHidden(false) error = %v", err)
	}
	if p.Hidden {
		t.Fatal("post still hidden")
	}
	// Unhide audits but does not notify.
	if len(notifier.sent) != 1 {
		t.Fatalf("unhide sent extra notifications: %+v", notifier.sent)
	}
	if len(recorder.entries) != 2 || recorder.entries[1].Action != audit.ActionPostUnhidden {
		t.Fatalf("audits = %+v, want post_hidden then post_unhidden", recorder.entries)
	}
}

func TestDeletePostThroughExecutor(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	owner := &user.User{ID: uuid.New(), Role: user.RoleUser}
	p := &post.Post{ID: uuid.New(), UserID: owner.ID}
	svc, _, postRepo, notifier, recorder := newTestService([]*user.User{admin, owner}, []*post.Post{p})

	if err := svc.DeletePost(context.Background(), admin.ID, p.ID, "illegal content"); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}

	if _, ok := postRepo.posts[p.ID]; ok {
		t.Fatal("post still present")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != notification.TypeContentDeleted {
		t.Fatalf("notifications = %+v, want one content_deleted", notifier.sent)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionPostDeleted {
		t.Fatalf("audits = %+v, want one post_deleted", recorder.entries)
	}
}
