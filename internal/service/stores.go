package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
)

// Consumer-side views of repo.Store. Find* return (nil, nil) when the record
// is absent; Replace* return repo.ErrVersionConflict when the aggregate moved
// under the caller.

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type PostStore interface {
	InsertPost(ctx context.Context, p *domain.Post) error
	FindPostByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ReplacePost(ctx context.Context, p *domain.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	DeletePostsByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)
}

type ProfileStore interface {
	InsertProfile(ctx context.Context, p *domain.Profile) error
	FindProfileByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	ReplaceProfile(ctx context.Context, p *domain.Profile) error
	DeleteProfileByOwner(ctx context.Context, ownerID primitive.ObjectID) error
}
