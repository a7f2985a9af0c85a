package service

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
)

// Ownership rules. Each returns nil when allowed or a *ForbiddenError with
// the reason surfaced to the client.

func canDeletePost(uid primitive.ObjectID, p *domain.Post) error {
	if p.AuthorID != uid {
		return forbidden("post belongs to another user")
	}
	return nil
}

// Comment removal is governed by the comment's author, not the post's.
func canDeleteComment(uid primitive.ObjectID, c domain.Comment) error {
	if c.UserID != uid {
		return forbidden("comment belongs to another user")
	}
	return nil
}

func canEditProfile(uid primitive.ObjectID, p *domain.Profile) error {
	if p.OwnerID != uid {
		return forbidden("profile belongs to another user")
	}
	return nil
}
