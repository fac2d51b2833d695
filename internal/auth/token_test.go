package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", "credit-intake-test", 15*time.Minute)
}

func TestIssueAndValidate(t *testing.T) {
	tm := newTestManager()

	token, err := tm.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("subject = %q, want alice", subject)
	}
}

func TestValidateExpired(t *testing.T) {
	tm := newTestManager()

	token, err := tm.Issue("alice", time.Millisecond)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := tm.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	other := NewTokenManager("another-secret", "credit-intake-test", 15*time.Minute)

	token, err := other.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := newTestManager().Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTampered(t *testing.T) {
	tm := newTestManager()

	token, err := tm.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + ".eyJzdWIiOiJhZG1pbiJ9." + parts[2]

	if _, err := tm.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateMalformed(t *testing.T) {
	tm := newTestManager()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := tm.Validate(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("malformed %q: err = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestValidateMissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "credit-intake-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newTestManager().Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("subject-less token: err = %v, want ErrInvalidToken", err)
	}
}

func TestIssueDefaultTTL(t *testing.T) {
	tm := newTestManager()

	token, err := tm.Issue("alice", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.Validate(token); err != nil {
		t.Fatalf("token with default ttl rejected immediately: %v", err)
	}
}
