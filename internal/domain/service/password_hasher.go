// Package service declares the collaborators the usecases depend on but do not implement:
// hashing, tokens, notifications, events and blob storage.
package service

// PasswordHasher turns plaintext passwords into stored hashes and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool

	// NeedsRehash reports whether hash was produced with other parameters than
	// the ones currently configured.
	NeedsRehash(hash string) bool
}
