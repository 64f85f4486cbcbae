package auth

import (
	"context"
	"net/http"

	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/session"
	"github.com/vaughan-dsouza/postboard/internal/token"
)

// UserFinder is the slice of the user store the resolver needs.
type UserFinder interface {
	ByID(ctx context.Context, id int64) (*models.User, error)
}

type Resolver struct {
	Users  UserFinder
	Secret []byte
}

func NewResolver(users UserFinder, secret []byte) *Resolver {
	return &Resolver{Users: users, Secret: secret}
}

// Resolve turns a request into an identity, or nil for anonymous. A
// missing cookie, a token that fails verification for any reason, and a
// subject that no longer exists all collapse to anonymous: callers never
// learn which.
func (rv *Resolver) Resolve(r *http.Request) *Identity {
	tok, ok := session.Extract(r)
	if !ok {
		return nil
	}

	userID, role, err := token.Verify(tok, rv.Secret)
	if err != nil {
		return nil
	}

	user, err := rv.Users.ByID(r.Context(), userID)
	if err != nil {
		return nil
	}

	return &Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		// The token's role, not the store's: a role change applies at
		// the next login.
		Role: role,
	}
}
