package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/creditdesk/credit-intake-be/internal/models"
	"github.com/creditdesk/credit-intake-be/internal/storage"
)

// EnsureAdmin creates the administrator account if it does not exist yet.
// Safe to run on every startup; an already-provisioned admin (whatever its
// current password) is left untouched.
func EnsureAdmin(ctx context.Context, users storage.UserStore, hasher *PasswordHasher, password string) error {
	_, err := users.FindByUsername(ctx, models.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = users.CreateUser(ctx, models.User{
		Username:     models.AdminUsername,
		PasswordHash: hash,
	})
	if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}
