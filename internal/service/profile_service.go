package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/repo"
)

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// ProfileInput is the flat, typed body of create-or-update.
type ProfileInput struct {
	Company  string   `json:"company"`
	Website  string   `json:"website"`
	Location string   `json:"location"`
	Status   string   `json:"status" binding:"required"`
	Skills   []string `json:"skills" binding:"required"`
	Bio      string   `json:"bio"`
}

// Upsert creates or rewrites the caller's own profile. The profile is located
// by owner id, so the caller can never write anyone else's.
func (s *ProfileService) Upsert(ctx context.Context, uid primitive.ObjectID, in ProfileInput) (*domain.Profile, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		p, err := s.profiles.FindProfileByOwner(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			p = &domain.Profile{OwnerID: uid}
			applyInput(p, in)
			err = s.profiles.InsertProfile(ctx, p)
		} else {
			applyInput(p, in)
			err = s.profiles.ReplaceProfile(ctx, p)
		}
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repo.ErrVersionConflict) {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}
	return nil, fmt.Errorf("save profile: %w", repo.ErrVersionConflict)
}

func applyInput(p *domain.Profile, in ProfileInput) {
	p.Company = in.Company
	p.Website = in.Website
	p.Location = in.Location
	p.Status = in.Status
	p.Skills = in.Skills
	p.Bio = in.Bio
}

func (s *ProfileService) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Profile, error) {
	p, err := s.profiles.FindProfileByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.ListProfiles(ctx)
}

type ExperienceInput struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (s *ProfileService) AddExperience(ctx context.Context, uid, ownerID primitive.ObjectID, in ExperienceInput) (*domain.Profile, error) {
	return s.mutateProfile(ctx, uid, ownerID, func(p *domain.Profile) error {
		p.Experience = insertFront(p.Experience, domain.Experience{
			ID:          primitive.NewObjectID(),
			Title:       in.Title,
			Company:     in.Company,
			Location:    in.Location,
			From:        in.From,
			To:          in.To,
			Current:     in.Current,
			Description: in.Description,
		})
		return nil
	})
}

func (s *ProfileService) RemoveExperience(ctx context.Context, uid, ownerID, expID primitive.ObjectID) (*domain.Profile, error) {
	return s.mutateProfile(ctx, uid, ownerID, func(p *domain.Profile) error {
		exp, removed := removeByID(p.Experience, expID)
		if !removed {
			return repo.ErrNotFound
		}
		p.Experience = exp
		return nil
	})
}

type EducationInput struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"field_of_study" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (s *ProfileService) AddEducation(ctx context.Context, uid, ownerID primitive.ObjectID, in EducationInput) (*domain.Profile, error) {
	return s.mutateProfile(ctx, uid, ownerID, func(p *domain.Profile) error {
		p.Education = insertFront(p.Education, domain.Education{
			ID:           primitive.NewObjectID(),
			School:       in.School,
			Degree:       in.Degree,
			FieldOfStudy: in.FieldOfStudy,
			From:         in.From,
			To:           in.To,
			Current:      in.Current,
			Description:  in.Description,
		})
		return nil
	})
}

func (s *ProfileService) RemoveEducation(ctx context.Context, uid, ownerID, eduID primitive.ObjectID) (*domain.Profile, error) {
	return s.mutateProfile(ctx, uid, ownerID, func(p *domain.Profile) error {
		edu, removed := removeByID(p.Education, eduID)
		if !removed {
			return repo.ErrNotFound
		}
		p.Education = edu
		return nil
	})
}

// mutateProfile edits the profile owned by ownerID under the version CAS.
// Experience and education are owner-only: a caller targeting a profile it
// does not own is denied before any change is applied.
func (s *ProfileService) mutateProfile(ctx context.Context, uid, ownerID primitive.ObjectID, apply func(*domain.Profile) error) (*domain.Profile, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		p, err := s.profiles.FindProfileByOwner(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			return nil, repo.ErrNotFound
		}
		if err := canEditProfile(uid, p); err != nil {
			return nil, err
		}
		if err := apply(p); err != nil {
			if errors.Is(err, errNoChange) {
				return p, nil
			}
			return nil, err
		}
		err = s.profiles.ReplaceProfile(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repo.ErrVersionConflict) {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}
	return nil, fmt.Errorf("save profile: %w", repo.ErrVersionConflict)
}
