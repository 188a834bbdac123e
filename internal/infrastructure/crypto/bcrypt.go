// Package crypto implements the credential hasher on bcrypt.
package crypto

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wanderly/auth-service/internal/api/metrics"
)

// DefaultCost is the bcrypt work factor. 12 makes a single hash cost on the
// order of a few hundred milliseconds, which is intentional: it bounds
// offline brute-force throughput against a leaked snapshot.
const DefaultCost = 12

// BcryptHasher implements ports.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify recomputes the hash using the salt and cost embedded in the stored
// value. A malformed stored hash and a wrong password both return false
// through the same code path.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
