package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/vaughan-dsouza/postboard/internal/auth"
	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/password"
	"github.com/vaughan-dsouza/postboard/internal/session"
	"github.com/vaughan-dsouza/postboard/internal/store"
	"github.com/vaughan-dsouza/postboard/internal/token"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ViewHandler is the browser-facing twin of the API handlers: same
// stores, same policy checks, but failures render as redirects or pages
// instead of JSON.
type ViewHandler struct {
	Users  UserStore
	Posts  PostStore
	Secret []byte
}

func NewViewHandler(users UserStore, posts PostStore, secret []byte) *ViewHandler {
	return &ViewHandler{Users: users, Posts: posts, Secret: secret}
}

type formData struct {
	Name    string
	Email   string
	Title   string
	Content string
}

type viewData struct {
	User  *auth.Identity
	Posts []models.Post
	Post  *models.Post
	Error string
	Form  formData
}

func (h *ViewHandler) render(w http.ResponseWriter, status int, name string, data viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("views: render %s: %v", name, err)
	}
}

// ---------------- home ----------------

func (h *ViewHandler) Home(w http.ResponseWriter, r *http.Request) {
	if auth.FromContext(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ---------------- signup ----------------

func (h *ViewHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	if auth.FromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "signup.html", viewData{})
}

func (h *ViewHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	pw := r.FormValue("password")
	form := formData{Name: name, Email: email}

	if name == "" || email == "" || pw == "" {
		h.render(w, http.StatusBadRequest, "signup.html", viewData{
			Error: "Name, email, and password are required", Form: form,
		})
		return
	}

	hash, err := password.Hash(r.Context(), pw)
	if err != nil {
		log.Printf("views: signup hash: %v", err)
		h.render(w, http.StatusInternalServerError, "signup.html", viewData{
			Error: "Failed to sign up", Form: form,
		})
		return
	}

	user, err := h.Users.Create(r.Context(), name, email, hash, models.RoleUser)
	if errors.Is(err, store.ErrEmailTaken) {
		h.render(w, http.StatusBadRequest, "signup.html", viewData{
			Error: "Email already exists", Form: form,
		})
		return
	}
	if err != nil {
		log.Printf("views: signup create: %v", err)
		h.render(w, http.StatusInternalServerError, "signup.html", viewData{
			Error: "Failed to sign up", Form: form,
		})
		return
	}

	tok, err := token.Issue(user.ID, user.Role, h.Secret)
	if err != nil {
		log.Printf("views: signup token: %v", err)
		h.render(w, http.StatusInternalServerError, "signup.html", viewData{
			Error: "Failed to sign up", Form: form,
		})
		return
	}

	session.Attach(w, tok)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ---------------- login ----------------

func (h *ViewHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if auth.FromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login.html", viewData{})
}

func (h *ViewHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	pw := r.FormValue("password")
	form := formData{Email: email}

	if email == "" || pw == "" {
		h.render(w, http.StatusBadRequest, "login.html", viewData{
			Error: "Email and password are required", Form: form,
		})
		return
	}

	user, err := h.Users.ByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		h.render(w, http.StatusUnauthorized, "login.html", viewData{
			Error: "Invalid email or password", Form: form,
		})
		return
	}
	if err != nil {
		log.Printf("views: login lookup: %v", err)
		h.render(w, http.StatusInternalServerError, "login.html", viewData{
			Error: "Failed to log in", Form: form,
		})
		return
	}

	if !password.Verify(r.Context(), pw, user.PasswordHash) {
		h.render(w, http.StatusUnauthorized, "login.html", viewData{
			Error: "Invalid email or password", Form: form,
		})
		return
	}

	tok, err := token.Issue(user.ID, user.Role, h.Secret)
	if err != nil {
		log.Printf("views: login token: %v", err)
		h.render(w, http.StatusInternalServerError, "login.html", viewData{
			Error: "Failed to log in", Form: form,
		})
		return
	}

	session.Attach(w, tok)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *ViewHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ---------------- dashboard / posts ----------------

func (h *ViewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		log.Printf("views: dashboard list: %v", err)
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "dashboard.html", viewData{
		User:  auth.FromContext(r.Context()),
		Posts: posts,
	})
}

func (h *ViewHandler) CreatePostForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "create-post.html", viewData{
		User: auth.FromContext(r.Context()),
	})
}

func (h *ViewHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	content := r.FormValue("content")

	if title == "" || content == "" {
		h.render(w, http.StatusBadRequest, "create-post.html", viewData{
			Error: "Title and content are required",
			Form:  formData{Title: title, Content: content},
		})
		return
	}

	id := auth.FromContext(r.Context())
	if _, err := h.Posts.Create(r.Context(), title, content, id.UserID, id.Name); err != nil {
		log.Printf("views: create post: %v", err)
		h.render(w, http.StatusInternalServerError, "create-post.html", viewData{
			Error: "Failed to create post",
			Form:  formData{Title: title, Content: content},
		})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *ViewHandler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	post, err := h.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("views: edit form %d: %v", id, err)
		http.Error(w, "Failed to load post", http.StatusInternalServerError)
		return
	}

	if auth.RequireOwner(auth.FromContext(r.Context()), post.AuthorID) != auth.Allow {
		http.Error(w, "You can only edit your own posts", http.StatusForbidden)
		return
	}

	h.render(w, http.StatusOK, "edit-post.html", viewData{
		User: auth.FromContext(r.Context()),
		Post: post,
	})
}

func (h *ViewHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	post, err := h.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("views: update %d: %v", id, err)
		http.Error(w, "Failed to update post", http.StatusInternalServerError)
		return
	}

	if auth.RequireOwner(auth.FromContext(r.Context()), post.AuthorID) != auth.Allow {
		http.Error(w, "You can only edit your own posts", http.StatusForbidden)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		edited := *post
		edited.Title = title
		edited.Content = content
		h.render(w, http.StatusBadRequest, "edit-post.html", viewData{
			User:  auth.FromContext(r.Context()),
			Post:  &edited,
			Error: "Title and content are required",
		})
		return
	}

	if _, err := h.Posts.Update(r.Context(), id, title, content); err != nil {
		log.Printf("views: update %d: %v", id, err)
		http.Error(w, "Failed to update post", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ---------------- admin ----------------

func (h *ViewHandler) Admin(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		log.Printf("views: admin list: %v", err)
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "admin.html", viewData{
		User:  auth.FromContext(r.Context()),
		Posts: posts,
	})
}

func (h *ViewHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	if err := h.Posts.Delete(r.Context(), id); err != nil {
		log.Printf("views: delete %d: %v", id, err)
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *ViewHandler) DeleteAllPosts(w http.ResponseWriter, r *http.Request) {
	if err := h.Posts.DeleteAll(r.Context()); err != nil {
		log.Printf("views: delete all: %v", err)
		http.Error(w, "Failed to delete posts", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// NotFound is the catch-all for unmatched routes.
func (h *ViewHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Page not found", http.StatusNotFound)
}
