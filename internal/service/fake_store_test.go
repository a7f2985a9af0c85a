package service_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/repo"
)

// fakeStore mirrors repo.Store contracts in memory: Find* return (nil, nil)
// when absent, Replace* enforce the version CAS. Safe for concurrent use so
// the conflict-retry path can be exercised.
type fakeStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*domain.User
	posts    map[primitive.ObjectID]*domain.Post
	profiles map[primitive.ObjectID]*domain.Profile // keyed by owner id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[primitive.ObjectID]*domain.User),
		posts:    make(map[primitive.ObjectID]*domain.Post),
		profiles: make(map[primitive.ObjectID]*domain.Profile),
	}
}

func clonePost(p *domain.Post) *domain.Post {
	cp := *p
	cp.Likes = append([]domain.Like(nil), p.Likes...)
	cp.Comments = append([]domain.Comment(nil), p.Comments...)
	return &cp
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]domain.Experience(nil), p.Experience...)
	cp.Education = append([]domain.Education(nil), p.Education...)
	return &cp
}

func (f *fakeStore) CreateUser(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.users {
		if it.Email == strings.ToLower(u.Email) {
			return repo.ErrEmailExists
		}
	}
	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.users {
		if it.Email == strings.ToLower(strings.TrimSpace(email)) {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.users[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) InsertPost(_ context.Context, p *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	if p.Likes == nil {
		p.Likes = []domain.Like{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	f.posts[p.ID] = clonePost(p)
	return nil
}

func (f *fakeStore) FindPostByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.posts[id]; ok {
		return clonePost(it), nil
	}
	return nil, nil
}

func (f *fakeStore) ListPosts(_ context.Context) ([]domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Post, 0, len(f.posts))
	for _, it := range f.posts {
		out = append(out, *clonePost(it))
	}
	return out, nil
}

func (f *fakeStore) ReplacePost(_ context.Context, p *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.posts[p.ID]
	if !ok || stored.Version != p.Version {
		return repo.ErrVersionConflict
	}
	p.Version++
	f.posts[p.ID] = clonePost(p)
	return nil
}

func (f *fakeStore) DeletePost(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) DeletePostsByAuthor(_ context.Context, authorID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, it := range f.posts {
		if it.AuthorID == authorID {
			delete(f.posts, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) InsertProfile(_ context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.OwnerID]; ok {
		return repo.ErrVersionConflict
	}
	p.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	f.profiles[p.OwnerID] = cloneProfile(p)
	return nil
}

func (f *fakeStore) FindProfileByOwner(_ context.Context, ownerID primitive.ObjectID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it, ok := f.profiles[ownerID]; ok {
		return cloneProfile(it), nil
	}
	return nil, nil
}

func (f *fakeStore) ListProfiles(_ context.Context) ([]domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Profile, 0, len(f.profiles))
	for _, it := range f.profiles {
		out = append(out, *cloneProfile(it))
	}
	return out, nil
}

func (f *fakeStore) ReplaceProfile(_ context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.profiles[p.OwnerID]
	if !ok || stored.Version != p.Version {
		return repo.ErrVersionConflict
	}
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	f.profiles[p.OwnerID] = cloneProfile(p)
	return nil
}

func (f *fakeStore) DeleteProfileByOwner(_ context.Context, ownerID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, ownerID)
	return nil
}

// conflictingPosts wraps a fakeStore and forces the first n ReplacePost
// calls to report a version conflict.
type conflictingPosts struct {
	*fakeStore
	failures int
}

func (c *conflictingPosts) ReplacePost(ctx context.Context, p *domain.Post) error {
	if c.failures > 0 {
		c.failures--
		return repo.ErrVersionConflict
	}
	return c.fakeStore.ReplacePost(ctx, p)
}
