package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/vaughan-dsouza/postboard/internal/auth"
	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/password"
	"github.com/vaughan-dsouza/postboard/internal/session"
	"github.com/vaughan-dsouza/postboard/internal/store"
	"github.com/vaughan-dsouza/postboard/internal/token"
	"github.com/vaughan-dsouza/postboard/internal/utils"
)

type AuthHandler struct {
	Users  UserStore
	Secret []byte
}

func NewAuthHandler(users UserStore, secret []byte) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret}
}

// ----------- Request/Response DTOs -------------

type signUpReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the public shape of a user: never the hash, never the
// timestamps.
type userPayload struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func publicUser(u *models.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	hash, err := password.Hash(r.Context(), req.Password)
	if err != nil {
		log.Printf("signup: hash: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	user, err := h.Users.Create(r.Context(), req.Name, req.Email, hash, models.RoleUser)
	if errors.Is(err, store.ErrEmailTaken) {
		utils.JSONError(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if err != nil {
		log.Printf("signup: create user: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	tok, err := token.Issue(user.ID, user.Role, h.Secret)
	if err != nil {
		log.Printf("signup: issue token: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	session.Attach(w, tok)
	utils.JSON(w, http.StatusCreated, map[string]userPayload{"user": publicUser(user)})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Unknown email and wrong password answer identically, so callers
	// cannot probe which accounts exist.
	user, err := h.Users.ByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Printf("login: lookup: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !password.Verify(r.Context(), req.Password, user.PasswordHash) {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tok, err := token.Issue(user.ID, user.Role, h.Secret)
	if err != nil {
		log.Printf("login: issue token: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	session.Attach(w, tok)
	utils.JSON(w, http.StatusOK, map[string]userPayload{"user": publicUser(user)})
}

// -------------- LOGOUT -----------------------

// Logout only clears the cookie. The token itself stays valid until it
// expires; there is no server-side revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := auth.FromContext(r.Context())
	if id == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]userPayload{"user": {
		ID:    id.UserID,
		Name:  id.Name,
		Email: id.Email,
		Role:  id.Role,
	}})
}
