// Package auth resolves a request to an identity and decides what that
// identity may do. It performs no I/O beyond the single user lookup at
// resolve time; policy checks are pure.
package auth

import (
	"context"

	"github.com/vaughan-dsouza/postboard/internal/models"
)

// Identity is the per-request authenticated principal. A nil *Identity
// means anonymous. Name and Email are the store's current values for
// display; Role is the one embedded in the session token, frozen until
// the user logs in again.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   models.Role
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

type ctxKey struct{}

// WithIdentity stores id (possibly nil) in ctx for downstream handlers.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity resolved for this request, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}
