package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post embeds its likes and comments, newest first. Author name/avatar are
// denormalized at creation time so reads never join against users.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID  primitive.ObjectID `bson:"author_id"     json:"author_id"`
	Name      string             `bson:"name"          json:"name"`
	Avatar    string             `bson:"avatar"        json:"avatar"`
	Text      string             `bson:"text"          json:"text"`
	Likes     []Like             `bson:"likes"         json:"likes"`
	Comments  []Comment          `bson:"comments"      json:"comments"`
	Version   int64              `bson:"version"       json:"-"`
	CreatedAt time.Time          `bson:"created_at"    json:"created_at"`
}

// Like carries only the acting user; one like per user per post.
type Like struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id"        json:"id"`
	UserID    primitive.ObjectID `bson:"user_id"    json:"user_id"`
	Name      string             `bson:"name"       json:"name"`
	Avatar    string             `bson:"avatar"     json:"avatar"`
	Text      string             `bson:"text"       json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (c Comment) SubID() primitive.ObjectID { return c.ID }
