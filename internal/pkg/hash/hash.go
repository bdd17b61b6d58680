package hash

// Hash abstracts hashing and verification of secrets.
type Hash interface {
	// Hash returns the hash of the plaintext string.
	Hash(str string) ([]byte, error)
	// Verify reports whether the plaintext string matches the given hash.
	Verify(hashed, str string) bool
}
