package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/creditdesk/credit-intake-be/internal/auth"
	"github.com/creditdesk/credit-intake-be/internal/middleware"
	"github.com/creditdesk/credit-intake-be/internal/models"
	"github.com/creditdesk/credit-intake-be/internal/storage/postgres"
)

// TestIntakeIntegration exercises the full register/login/submit flow against
// a live Postgres instance.
func TestIntakeIntegration(t *testing.T) {
	if os.Getenv("RUN_INTAKE_INTEGRATION") != "true" {
		t.Skip("set RUN_INTAKE_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	secret := mustGetEnv(t, "JWT_SECRET")
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager(secret, "credit-intake-test", 15*time.Minute)

	mux := http.NewServeMux()
	NewAuthHandler(store, hasher, tokens).Register(mux)

	protected := http.NewServeMux()
	NewApplicationHandler(store).Register(protected)
	guarded := middleware.RequireAuth(tokens, store, protected)
	mux.Handle("/applications", guarded)
	mux.Handle("/applications/", guarded)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	register(t, ts.URL, username, password)

	resp, err := http.PostForm(ts.URL+"/token", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		t.Fatalf("token request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token status = %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	var tokenBody struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &tokenBody); err != nil {
		t.Fatalf("decode token payload: %v", err)
	}
	if strings.TrimSpace(tokenBody.AccessToken) == "" {
		t.Fatal("token response missing access_token")
	}

	app := submit(t, ts.URL, tokenBody.AccessToken, "Integration Tester", "50000", "+15551234567")
	if app.Status != models.StatusNew {
		t.Fatalf("submitted application status = %s, want new", app.Status)
	}

	t.Logf("created user %s, logged in via /token, submitted application id=%d", username, app.ID)
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
