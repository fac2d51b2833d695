package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashNeverComparableDirectly(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same plaintext must differ (bcrypt salts)")
	}
	if first == "secret-password" {
		t.Fatal("hash must not equal the plaintext")
	}
}

func TestVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !hasher.Verify("secret-password", digest) {
		t.Fatal("correct password rejected")
	}
	if hasher.Verify("wrong-password", digest) {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$garbage"} {
		if hasher.Verify("anything", digest) {
			t.Fatalf("malformed digest %q accepted", digest)
		}
	}
}

func TestCostOutOfRangeFallsBack(t *testing.T) {
	hasher := NewPasswordHasher(99)
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", hasher.cost, bcrypt.DefaultCost)
	}
}
