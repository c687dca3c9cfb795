package post

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/user"
	img "github.com/feedline/feedline-api/internal/pkg/imaging"
	"github.com/feedline/feedline-api/internal/pkg/storage"
)

// Service handles post business logic
type Service struct {
	repo      Repository
	userRepo  user.Repository
	media     storage.Storage
	processor *img.Processor
}

// NewService creates post service
func NewService(repo Repository, userRepo user.Repository, media storage.Storage, processor *img.Processor) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		media:     media,
		processor: processor,
	}
}

// Create creates a new post owned by the author
func (s *Service) Create(ctx context.Context, authorID uuid.UUID, req *CreateRequest) (*Post, error) {
	status := Status(req.Status)
	if status == "" {
		status = StatusPublished
	}

	now := time.Now()
	p := &Post{
		ID:        uuid.New(),
		UserID:    authorID,
		Title:     req.Title,
		Content:   req.Content,
		Type:      Type(req.Type),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ScheduledAt != nil {
		p.ScheduledAt = sql.NullTime{Time: *req.ScheduledAt, Valid: true}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a post, enforcing visibility for viewers other than the owner
// and admins.
func (s *Service) Get(ctx context.Context, id, viewerID uuid.UUID, viewerIsAdmin bool) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	if p.UserID == viewerID || viewerIsAdmin {
		return p, nil
	}

	if !p.IsPubliclyVisible(time.Now()) {
		return nil, ErrNotVisible
	}

	owner, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Suspended {
		return nil, ErrNotVisible
	}

	return p, nil
}

// Update applies a partial edit by the post owner
func (s *Service) Update(ctx context.Context, actorID, postID uuid.UUID, req *UpdateRequest) (*Post, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	if p.UserID != actorID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Status != nil {
		p.Status = Status(*req.Status)
	}
	if req.ScheduledAt != nil {
		p.ScheduledAt = sql.NullTime{Time: *req.ScheduledAt, Valid: true}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a post. Only the owner or an admin may delete; comments and
// reactions cascade with the post row, attached media is removed best-effort.
func (s *Service) Delete(ctx context.Context, actorID, postID uuid.UUID, actorIsAdmin bool) error {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}
	if p.UserID != actorID && !actorIsAdmin {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	if p.MediaKey.Valid && s.media != nil {
		_ = s.media.Delete(ctx, p.MediaKey.String)
	}

	return nil
}

// ListPublic returns the public feed
func (s *Service) ListPublic(ctx context.Context, filter *ListFilter) ([]*ListItem, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.ListPublic(ctx, filter)
}

// ListMine returns the caller's own posts regardless of status/visibility
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// AttachMedia uploads a media file for a post owned by the actor. Images are
// resized and get a thumbnail variant next to the original.
func (s *Service) AttachMedia(ctx context.Context, actorID, postID uuid.UUID, reader io.Reader, filename, contentType string) (string, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrPostNotFound
	}
	if p.UserID != actorID {
		return "", ErrNotOwner
	}

	key := fmt.Sprintf("posts/%s/%s%s", postID, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	if p.Type == TypeImage && s.processor != nil {
		processed, err := s.processor.Process(reader)
		if err != nil {
			return "", err
		}
		if err := s.media.Put(ctx, key, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
			return "", err
		}
		thumbKey := key + ".thumb"
		if err := s.media.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
			return "", err
		}
	} else {
		if err := s.media.Put(ctx, key, reader, contentType); err != nil {
			return "", err
		}
	}

	if err := s.repo.SetMediaKey(ctx, postID, key); err != nil {
		return "", err
	}

	return s.media.GetURL(key), nil
}
