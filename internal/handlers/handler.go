package handlers

import (
	"context"

	"github.com/vaughan-dsouza/postboard/internal/db"
	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/store"
)

// UserStore and PostStore are the slices of the store layer the handlers
// use; tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
}

type PostStore interface {
	Create(ctx context.Context, title, content string, authorID int64, authorName string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type Handler struct {
	Auth  *AuthHandler
	Posts *PostHandler
	Views *ViewHandler
}

func NewHandler(lazy *db.Lazy, secret []byte) *Handler {
	users := store.NewUsers(lazy)
	posts := store.NewPosts(lazy)
	return &Handler{
		Auth:  NewAuthHandler(users, secret),
		Posts: NewPostHandler(posts),
		Views: NewViewHandler(users, posts, secret),
	}
}
