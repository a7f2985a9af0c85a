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

func (s *Store) InsertProfile(ctx context.Context, p *domain.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	res, err := s.colProfiles.InsertOne(ctx, p)
	if IsDup(err) {
		// unique owner_id: a concurrent upsert won the insert
		return ErrVersionConflict
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindProfileByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Profile, error) {
	var p domain.Profile
	err := s.colProfiles.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &p, err
}

func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	cur, err := s.colProfiles.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Profile
	for cur.Next(ctx) {
		var p domain.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (s *Store) ReplaceProfile(ctx context.Context, p *domain.Profile) error {
	cur := p.Version
	p.Version = cur + 1
	p.UpdatedAt = time.Now().UTC()
	res, err := s.colProfiles.ReplaceOne(ctx, bson.M{"_id": p.ID, "version": cur}, p)
	if err != nil {
		p.Version = cur
		return err
	}
	if res.MatchedCount == 0 {
		p.Version = cur
		metrics.MutationConflicts.WithLabelValues("profile").Inc()
		return ErrVersionConflict
	}
	return nil
}

func (s *Store) DeleteProfileByOwner(ctx context.Context, ownerID primitive.ObjectID) error {
	_, err := s.colProfiles.DeleteOne(ctx, bson.M{"owner_id": ownerID})
	return err
}
