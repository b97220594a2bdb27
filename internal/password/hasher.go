// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/ride2gather-server/internal/model"
)

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 10

// ErrTooLong is returned by Hash for passwords bcrypt cannot take (over 72 bytes).
var ErrTooLong = bcrypt.ErrPasswordTooLong

var _ model.PasswordHasher = (*Hasher)(nil)

// Hasher bounds how many bcrypt computations run at once. Callers queue on
// the semaphore with their request context.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher creates a Hasher. A non-positive concurrency means GOMAXPROCS.
func NewHasher(cost, concurrency int) *Hasher {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares password against a bcrypt hash.
func (h *Hasher) Verify(ctx context.Context, hash, password string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return true, nil
}
