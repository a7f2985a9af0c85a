package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/metrics"
)

func (s *Store) InsertPost(ctx context.Context, p *domain.Post) error {
	p.CreatedAt = time.Now().UTC()
	if p.Likes == nil {
		p.Likes = []domain.Like{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	res, err := s.colPosts.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindPostByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &p, err
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	cur, err := s.colPosts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Post
	for cur.Next(ctx) {
		var p domain.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// ReplacePost writes the whole aggregate conditioned on the version it was
// read at; the stored version is bumped so a concurrent writer loses exactly
// one of the two races instead of silently overwriting.
func (s *Store) ReplacePost(ctx context.Context, p *domain.Post) error {
	cur := p.Version
	p.Version = cur + 1
	res, err := s.colPosts.ReplaceOne(ctx, bson.M{"_id": p.ID, "version": cur}, p)
	if err != nil {
		p.Version = cur
		return err
	}
	if res.MatchedCount == 0 {
		p.Version = cur
		metrics.MutationConflicts.WithLabelValues("post").Inc()
		return ErrVersionConflict
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.colPosts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeletePostsByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	res, err := s.colPosts.DeleteMany(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
