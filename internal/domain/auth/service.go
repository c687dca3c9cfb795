package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedline/feedline-api/internal/domain/user"
	"github.com/feedline/feedline-api/internal/pkg/jwt"
	"github.com/feedline/feedline-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo user.Repository
	jwtSvc   *jwt.Service
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtSvc *jwt.Service) *Service {
	return &Service{userRepo: userRepo, jwtSvc: jwtSvc}
}

// Register creates a new account with the default user role
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, user.ErrEmailTaken
	}
	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, user.ErrUsernameTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueToken(u)
}

// Login authenticates a user and returns an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if u.IsBanned() {
		return nil, ErrAccountBanned
	}

	return s.issueToken(u)
}

// Me returns the authenticated user's account
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) issueToken(u *user.User) (*TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(u.ID, string(u.Role), u.Suspended)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, User: u}, nil
}
