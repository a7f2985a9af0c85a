package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/helper"
	"github.com/tazhibayda/devconnect-service/internal/repo"
	"github.com/tazhibayda/devconnect-service/internal/security"
)

type UserService struct {
	users    UserStore
	profiles ProfileStore
	posts    PostStore
}

func NewUserService(users UserStore, profiles ProfileStore, posts PostStore) *UserService {
	return &UserService{users: users, profiles: profiles, posts: posts}
}

// Register creates the account. Duplicate emails surface repo.ErrEmailExists
// whether detected by the pre-check or by the unique index.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if existing, err := s.users.FindUserByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return nil, repo.ErrEmailExists
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Avatar:       helper.GravatarURL(email),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil || !security.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

// DeleteAccount removes the caller's profile, account record, and every post
// it authored, in that order. Posts go last: a crash mid-cascade leaves
// orphaned posts behind, never a post pointing at a half-deleted account
// that could still log in.
func (s *UserService) DeleteAccount(ctx context.Context, uid primitive.ObjectID) (int64, error) {
	if err := s.profiles.DeleteProfileByOwner(ctx, uid); err != nil {
		return 0, fmt.Errorf("delete profile: %w", err)
	}
	if err := s.users.DeleteUser(ctx, uid); err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	removed, err := s.posts.DeletePostsByAuthor(ctx, uid)
	if err != nil {
		return 0, fmt.Errorf("delete posts: %w", err)
	}
	return removed, nil
}
