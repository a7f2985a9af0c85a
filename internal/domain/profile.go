package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is keyed by its owner: one per user, looked up by owner_id only.
type Profile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"owner_id"      json:"owner_id"`
	Company    string             `bson:"company,omitempty"  json:"company,omitempty"`
	Website    string             `bson:"website,omitempty"  json:"website,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Status     string             `bson:"status"             json:"status"`
	Skills     []string           `bson:"skills"             json:"skills"`
	Bio        string             `bson:"bio,omitempty"      json:"bio,omitempty"`
	Experience []Experience       `bson:"experience"         json:"experience"`
	Education  []Education        `bson:"education"          json:"education"`
	Version    int64              `bson:"version"            json:"-"`
	CreatedAt  time.Time          `bson:"created_at"         json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"         json:"updated_at"`
}

type Experience struct {
	ID          primitive.ObjectID `bson:"_id"                   json:"id"`
	Title       string             `bson:"title"                 json:"title"`
	Company     string             `bson:"company"               json:"company"`
	Location    string             `bson:"location,omitempty"    json:"location,omitempty"`
	From        string             `bson:"from"                  json:"from"`
	To          string             `bson:"to,omitempty"          json:"to,omitempty"`
	Current     bool               `bson:"current"               json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

func (e Experience) SubID() primitive.ObjectID { return e.ID }

type Education struct {
	ID           primitive.ObjectID `bson:"_id"                   json:"id"`
	School       string             `bson:"school"                json:"school"`
	Degree       string             `bson:"degree"                json:"degree"`
	FieldOfStudy string             `bson:"field_of_study"        json:"field_of_study"`
	From         string             `bson:"from"                  json:"from"`
	To           string             `bson:"to,omitempty"          json:"to,omitempty"`
	Current      bool               `bson:"current"               json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

func (e Education) SubID() primitive.ObjectID { return e.ID }
