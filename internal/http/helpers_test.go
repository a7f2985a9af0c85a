package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	api "github.com/tazhibayda/devconnect-service/internal/http"
	"github.com/tazhibayda/devconnect-service/internal/log"
	"github.com/tazhibayda/devconnect-service/internal/queue"
	"github.com/tazhibayda/devconnect-service/internal/repo"
	"github.com/tazhibayda/devconnect-service/internal/service"
)

const testSecret = "test_secret_key"

type testEnv struct {
	T      *testing.T
	Store  *fakeStore
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if _, err := log.Init(false); err != nil {
		t.Fatalf("log init: %v", err)
	}

	f := newFakeStore()
	users := service.NewUserService(f, f, f)
	posts := service.NewPostService(f, f)
	profiles := service.NewProfileService(f)

	h := api.NewHandler(users, posts, profiles, f, testSecret, 36000, queue.NewNoop(), "devconnect.events")
	r := api.NewRouter(h, nil, 0)

	return &testEnv{T: t, Store: f, Router: r}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	e.T.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// register creates an account through the API and returns its access token.
func (e *testEnv) register(name, email string) string {
	e.T.Helper()
	w := e.do("POST", "/api/users",
		`{"name":"`+name+`","email":"`+email+`","password":"StrongP@ss1"}`, nil)
	if w.Code != 201 {
		e.T.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}
	var tr struct{ Token string }
	if err := json.Unmarshal(w.Body.Bytes(), &tr); err != nil || tr.Token == "" {
		e.T.Fatalf("register resp: %v %s", err, w.Body.String())
	}
	return tr.Token
}

// fakeStore is the in-memory stand-in for repo.Store used by handler tests:
// same (nil, nil) absence and version-CAS contracts.
type fakeStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*domain.User
	posts    map[primitive.ObjectID]*domain.Post
	profiles map[primitive.ObjectID]*domain.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[primitive.ObjectID]*domain.User),
		posts:    make(map[primitive.ObjectID]*domain.Post),
		profiles: make(map[primitive.ObjectID]*domain.Profile),
	}
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

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
