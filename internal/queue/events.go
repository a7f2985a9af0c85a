package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Routing keys on the topic exchange.
const (
	KeyUserRegistered = "user.registered"
	KeyPostLiked      = "post.liked"
	KeyPostCommented  = "post.commented"
	KeyAccountDeleted = "account.deleted"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type PostLiked struct {
	PostID primitive.ObjectID `json:"post_id"`
	UserID primitive.ObjectID `json:"user_id"`
}

type PostCommented struct {
	PostID    primitive.ObjectID `json:"post_id"`
	CommentID primitive.ObjectID `json:"comment_id"`
	UserID    primitive.ObjectID `json:"user_id"`
}

type AccountDeleted struct {
	UserID       primitive.ObjectID `json:"user_id"`
	PostsRemoved int64              `json:"posts_removed"`
}
