// Package store is the persistence layer: users keyed by normalized email,
// posts keyed by id. Every query runs under a bounded timeout.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("store: not found")
	ErrEmailTaken = errors.New("store: email already exists")
)

const queryTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}
