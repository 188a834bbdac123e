package crypto

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost) // low cost keeps the test fast

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatalf("hash must not equal or leak the plaintext")
	}
	if !h.Verify("secret1", hash) {
		t.Fatalf("expected hash to verify against original password")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("secret1")
	b, _ := h.Hash("secret1")
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if h.Verify("secret1", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must not verify")
	}
	if h.Verify("secret1", "") {
		t.Fatalf("empty hash must not verify")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != DefaultCost {
		t.Fatalf("expected fallback to DefaultCost, got %d", h.cost)
	}
	if h := NewBcryptHasher(99); h.cost != DefaultCost {
		t.Fatalf("expected fallback to DefaultCost, got %d", h.cost)
	}
	if h := NewBcryptHasher(10); h.cost != 10 {
		t.Fatalf("expected cost 10 kept, got %d", h.cost)
	}
}
