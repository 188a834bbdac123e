package ports

// PasswordHasher computes and checks salted one-way credential hashes.
// Plaintext never crosses this boundary in the other direction: it is not
// logged, returned, or persisted.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. Timing does not
	// distinguish a wrong password from a malformed hash.
	Verify(password, hash string) bool
}
