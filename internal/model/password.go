package model

import "context"

// PasswordHasher derives and verifies salted password hashes.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Verify reports whether password matches hash. A mismatch is not an error.
	Verify(ctx context.Context, hash, password string) (bool, error)
}
