package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/store"
)

// In-memory stand-ins for the Postgres stores. They reproduce the store
// contracts the handlers rely on: normalized-email uniqueness, newest-first
// listing, idempotent delete.

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User // keyed by normalized email
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := store.NormalizeEmail(email)
	if _, exists := f.users[key]; exists {
		return nil, store.ErrEmailTaken
	}

	f.nextID++
	u := &models.User{
		ID:           f.nextID,
		Name:         name,
		Email:        key,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.users[key] = u
	return u, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[store.NormalizeEmail(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) ByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakePosts struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.Post
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[int64]*models.Post{}}
}

func (f *fakePosts) Create(_ context.Context, title, content string, authorID int64, authorName string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	p := &models.Post{
		ID:         f.nextID,
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePosts) List(_ context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePosts) ByID(_ context.Context, id int64) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Update(_ context.Context, id int64, title, content string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) DeleteAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = map[int64]*models.Post{}
	return nil
}
