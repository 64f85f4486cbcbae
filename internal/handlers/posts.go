package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vaughan-dsouza/postboard/internal/auth"
	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/store"
	"github.com/vaughan-dsouza/postboard/internal/utils"
)

type PostHandler struct {
	Posts PostStore
}

func NewPostHandler(posts PostStore) *PostHandler {
	return &PostHandler{Posts: posts}
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ---------------------- LIST ----------------------

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		log.Printf("posts: list: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	utils.JSON(w, http.StatusOK, map[string][]models.Post{"posts": posts})
}

// ---------------------- GET ONE ----------------------

// A post is readable by its author or by an admin.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("posts: get %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}

	if auth.RequireOwnerOrAdmin(auth.FromContext(r.Context()), post.AuthorID) != auth.Allow {
		utils.JSONError(w, http.StatusForbidden, "Forbidden")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]*models.Post{"post": post})
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if body.Title == "" || body.Content == "" {
		utils.JSONError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	id := auth.FromContext(r.Context())
	post, err := h.Posts.Create(r.Context(), body.Title, body.Content, id.UserID, id.Name)
	if err != nil {
		log.Printf("posts: create: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]*models.Post{"post": post})
}

// ---------------------- UPDATE ----------------------

// Edits are author-only. Admins are deliberately excluded here, unlike
// deletes.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}

	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	post, err := h.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("posts: update %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	if auth.RequireOwner(auth.FromContext(r.Context()), post.AuthorID) != auth.Allow {
		utils.JSONError(w, http.StatusForbidden, "You can only edit your own posts")
		return
	}

	if body.Title == "" || body.Content == "" {
		utils.JSONError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	updated, err := h.Posts.Update(r.Context(), id, body.Title, body.Content)
	if err != nil {
		log.Printf("posts: update %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]*models.Post{"post": updated})
}

// ---------------------- DELETE (admin) ----------------------

// Delete removes one post. Idempotent; the route is gated on admin.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.Posts.Delete(r.Context(), id); err != nil {
		log.Printf("posts: delete %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Posts.DeleteAll(r.Context()); err != nil {
		log.Printf("posts: delete all: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to delete posts")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
