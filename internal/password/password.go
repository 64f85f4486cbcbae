// Package password wraps bcrypt hashing behind a concurrency cap so a
// burst of signups cannot saturate every scheduler thread.
package password

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Cost 10 keeps a single hash around 50-100ms on current hardware.
const cost = 10

var sem = semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))

func Hash(ctx context.Context, plaintext string) (string, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches digest. A wrong password is
// simply false, not an error.
func Verify(ctx context.Context, plaintext, digest string) bool {
	if err := sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
