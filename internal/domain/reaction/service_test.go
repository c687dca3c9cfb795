package reaction

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/comment"
	"github.com/feedline/feedline-api/internal/domain/notification"
	"github.com/feedline/feedline-api/internal/domain/post"
)

type key struct {
	entity uuid.UUID
	user   uuid.UUID
}

type fakeRepo struct {
	postReactions    map[key]Kind
	commentReactions map[key]Kind
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		postReactions:    make(map[key]Kind),
		commentReactions: make(map[key]Kind),
	}
}

func (f *fakeRepo) GetPostReaction(_ context.Context, postID, userID uuid.UUID) (Kind, error) {
	return f.postReactions[key{postID, userID}], nil
}

func (f *fakeRepo) SetPostReaction(_ context.Context, postID, userID uuid.UUID, kind Kind) error {
	f.postReactions[key{postID, userID}] = kind
	return nil
}

func (f *fakeRepo) ClearPostReaction(_ context.Context, postID, userID uuid.UUID) error {
	delete(f.postReactions, key{postID, userID})
	return nil
}

func (f *fakeRepo) PostCounts(_ context.Context, postID uuid.UUID) (*Counts, error) {
	return tally(f.postReactions, postID), nil
}

func (f *fakeRepo) GetCommentReaction(_ context.Context, commentID, userID uuid.UUID) (Kind, error) {
	return f.commentReactions[key{commentID, userID}], nil
}

func (f *fakeRepo) SetCommentReaction(_ context.Context, commentID, userID uuid.UUID, kind Kind) error {
	f.commentReactions[key{commentID, userID}] = kind
	return nil
}

func (f *fakeRepo) ClearCommentReaction(_ context.Context, commentID, userID uuid.UUID) error {
	delete(f.commentReactions, key{commentID, userID})
	return nil
}

func (f *fakeRepo) CommentCounts(_ context.Context, commentID uuid.UUID) (*Counts, error) {
	return tally(f.commentReactions, commentID), nil
}

func tally(reactions map[key]Kind, entityID uuid.UUID) *Counts {
	c := &Counts{}
	for k, kind := range reactions {
		if k.entity != entityID {
			continue
		}
		switch kind {
		case KindLike:
			c.Likes++
		case KindDislike:
			c.Dislikes++
		}
	}
	return c
}

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

func (f *fakePostRepo) SetHidden(_ context.Context, _ uuid.UUID, _ bool) error { return nil }

func (f *fakePostRepo) SetMediaKey(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (f *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ListPublic(_ context.Context, _ *post.ListFilter) ([]*post.ListItem, int, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) ListByOwner(_ context.Context, _ uuid.UUID, _, _ int) ([]*post.Post, error) {
	return nil, nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*comment.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	f.comments[c.ID] = c
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*comment.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

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

func newTestService(posts []*post.Post, comments []*comment.Comment) (*Service, *fakeRepo, *fakeNotifier) {
	repo := newFakeRepo()
	postRepo := &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
	for _, p := range posts {
		postRepo.posts[p.ID] = p
	}
	commentRepo := &fakeCommentRepo{comments: make(map[uuid.UUID]*comment.Comment)}
	for _, c := range comments {
		commentRepo.comments[c.ID] = c
	}
	notifier := &fakeNotifier{}
	return NewService(repo, postRepo, commentRepo, notifier), repo, notifier
}

func TestTogglePostLike(t *testing.T) {
	owner := uuid.New()
	actor := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: owner}
	svc, _, notifier := newTestService([]*post.Post{p}, nil)

	counts, err := svc.TogglePost(context.Background(), actor, p.ID, KindLike)
	if err != nil {
		t.Fatalf("TogglePost() error = %v", err)
	}
	if counts.Likes != 1 || counts.Dislikes != 0 {
		t.Fatalf("counts = %+v, want 1 like", counts)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
	if notifier.sent[0].Type != notification.TypeLikePost || notifier.sent[0].ToUserID != owner {
		t.Fatalf("notification = %+v, want like_post to owner", notifier.sent[0])
	}
}

func TestTogglePostRoundTrip(t *testing.T) {
	actor := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: uuid.New()}
	svc, repo, _ := newTestService([]*post.Post{p}, nil)
	ctx := context.Background()

	if _, err := svc.TogglePost(ctx, actor, p.ID, KindLike); err != nil {
		t.Fatalf("first toggle error = %v", err)
	}
	counts, err := svc.TogglePost(ctx, actor, p.ID, KindLike)
	if err != nil {
		t.Fatalf("second toggle error = %v", err)
	}
	if counts.Likes != 0 || counts.Dislikes != 0 {
		t.Fatalf("counts after round trip = %+v, want zeros", counts)
	}
	if len(repo.postReactions) != 0 {
		t.Fatal("reaction row survived a toggle round trip")
	}
}

func TestTogglePostMutualExclusion(t *testing.T) {
	actor := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: uuid.New()}
	svc, repo, _ := newTestService([]*post.Post{p}, nil)
	ctx := context.Background()

	sequences := [][]Kind{
		{KindLike, KindDislike},
		{KindDislike, KindLike, KindDislike},
		{KindLike, KindLike, KindDislike},
	}
	for i, seq := range sequences {
		for _, kind := range seq {
			counts, err := svc.TogglePost(ctx, actor, p.ID, kind)
			if err != nil {
				t.Fatalf("sequence %d: toggle error = %v", i, err)
			}
			if counts.Likes+counts.Dislikes > 1 {
				t.Fatalf("sequence %d: user counted in both sets: %+v", i, counts)
			}
		}
		// reset between sequences
		delete(repo.postReactions, key{p.ID, actor})
	}
}

func TestSwitchingKindsDoesNotNotify(t *testing.T) {
	actor := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: uuid.New()}
	svc, _, notifier := newTestService([]*post.Post{p}, nil)
	ctx := context.Background()

	if _, err := svc.TogglePost(ctx, actor, p.ID, KindDislike); err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if _, err := svc.TogglePost(ctx, actor, p.ID, KindLike); err != nil {
		t.Fatalf("switch error = %v", err)
	}

	// Only the initial none->dislike transition notifies.
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
	if notifier.sent[0].Type != notification.TypeDislikePost {
		t.Fatalf("notification type = %s, want dislike_post", notifier.sent[0].Type)
	}
}

func TestToggleOffDoesNotNotify(t *testing.T) {
	actor := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: uuid.New()}
	svc, _, notifier := newTestService([]*post.Post{p}, nil)
	ctx := context.Background()

	if _, err := svc.TogglePost(ctx, actor, p.ID, KindLike); err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if _, err := svc.TogglePost(ctx, actor, p.ID, KindLike); err != nil {
		t.Fatalf("toggle off error = %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
}

func TestOwnerLikingOwnPostDoesNotNotify(t *testing.T) {
	owner := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: owner}
	svc, _, notifier := newTestService([]*post.Post{p}, nil)

	if _, err := svc.TogglePost(context.Background(), owner, p.ID, KindLike); err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("sent %d notifications, want 0 for self-like", len(notifier.sent))
	}
}

func TestTogglePostUnknown(t *testing.T) {
	svc, _, _ := newTestService(nil, nil)

	if _, err := svc.TogglePost(context.Background(), uuid.New(), uuid.New(), KindLike); err != post.ErrPostNotFound {
		t.Fatalf("TogglePost(unknown) error = %v, want ErrPostNotFound", err)
	}
}

func TestToggleCommentNeverNotifies(t *testing.T) {
	actor := uuid.New()
	c := &comment.Comment{ID: uuid.New(), PostID: uuid.New(), UserID: uuid.New()}
	svc, _, notifier := newTestService(nil, []*comment.Comment{c})
	ctx := context.Background()

	counts, err := svc.ToggleComment(ctx, actor, c.ID, KindLike)
	if err != nil {
		t.Fatalf("ToggleComment() error = %v", err)
	}
	if counts.Likes != 1 {
		t.Fatalf("counts = %+v, want 1 like", counts)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("comment reaction sent %d notifications, want 0", len(notifier.sent))
	}

	counts, err = svc.ToggleComment(ctx, actor, c.ID, KindDislike)
	if err != nil {
		t.Fatalf("switch error = %v", err)
	}
	if counts.Likes != 0 || counts.Dislikes != 1 {
		t.Fatalf("counts after switch = %+v, want 1 dislike", counts)
	}
}

func TestToggleInvalidKind(t *testing.T) {
	p := &post.Post{ID: uuid.New(), UserID: uuid.New()}
	svc, _, _ := newTestService([]*post.Post{p}, nil)

	if _, err := svc.TogglePost(context.Background(), uuid.New(), p.ID, Kind("love")); err != ErrInvalidKind {
		t.Fatalf("TogglePost(invalid kind) error = %v, want ErrInvalidKind", err)
	}
}
