package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/repo"
)

// casAttempts bounds the re-read/re-apply loop on version conflicts.
const casAttempts = 3

type PostService struct {
	posts PostStore
	users UserStore
}

func NewPostService(posts PostStore, users UserStore) *PostService {
	return &PostService{posts: posts, users: users}
}

func (s *PostService) Create(ctx context.Context, uid primitive.ObjectID, text string) (*domain.Post, error) {
	u, err := s.users.FindUserByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	if u == nil {
		return nil, repo.ErrNotFound
	}
	p := &domain.Post{
		AuthorID: uid,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Text:     text,
	}
	if err := s.posts.InsertPost(ctx, p); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	p, err := s.posts.FindPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	if p == nil {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx)
}

func (s *PostService) Delete(ctx context.Context, uid, postID primitive.ObjectID) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := canDeletePost(uid, p); err != nil {
		return err
	}
	return s.posts.DeletePost(ctx, postID)
}

// Like is idempotent: a second like by the same user leaves the post
// untouched and reports noop=true.
func (s *PostService) Like(ctx context.Context, uid, postID primitive.ObjectID) ([]domain.Like, bool, error) {
	var noop bool
	p, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		if containsMatch(p.Likes, func(l domain.Like) bool { return l.UserID == uid }) {
			noop = true
			return errNoChange
		}
		noop = false
		p.Likes = insertFront(p.Likes, domain.Like{UserID: uid})
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return p.Likes, noop, nil
}

func (s *PostService) Unlike(ctx context.Context, uid, postID primitive.ObjectID) ([]domain.Like, error) {
	p, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		likes, removed := removeMatch(p.Likes, func(l domain.Like) bool { return l.UserID == uid })
		if !removed {
			return forbidden("still have not liked this post")
		}
		p.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, uid, postID primitive.ObjectID, text string) ([]domain.Comment, error) {
	u, err := s.users.FindUserByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load commenter: %w", err)
	}
	if u == nil {
		return nil, repo.ErrNotFound
	}
	p, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		p.Comments = insertFront(p.Comments, domain.Comment{
			ID:        primitive.NewObjectID(),
			UserID:    uid,
			Name:      u.Name,
			Avatar:    u.Avatar,
			Text:      text,
			CreatedAt: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (s *PostService) DeleteComment(ctx context.Context, uid, postID, commentID primitive.ObjectID) ([]domain.Comment, error) {
	p, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		var target *domain.Comment
		for i := range p.Comments {
			if p.Comments[i].ID == commentID {
				target = &p.Comments[i]
				break
			}
		}
		if target == nil {
			return repo.ErrNotFound
		}
		if err := canDeleteComment(uid, *target); err != nil {
			return err
		}
		comments, _ := removeByID(p.Comments, commentID)
		p.Comments = comments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// mutate runs read-apply-write as one logical unit. The write is conditional
// on the version read; on conflict the whole cycle restarts so no interleaved
// update is ever lost or partially observed.
func (s *PostService) mutate(ctx context.Context, postID primitive.ObjectID, apply func(*domain.Post) error) (*domain.Post, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		p, err := s.posts.FindPostByID(ctx, postID)
		if err != nil {
			return nil, fmt.Errorf("load post: %w", err)
		}
		if p == nil {
			return nil, repo.ErrNotFound
		}
		if err := apply(p); err != nil {
			if errors.Is(err, errNoChange) {
				return p, nil
			}
			return nil, err
		}
		err = s.posts.ReplacePost(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repo.ErrVersionConflict) {
			return nil, fmt.Errorf("save post: %w", err)
		}
	}
	return nil, fmt.Errorf("save post: %w", repo.ErrVersionConflict)
}
