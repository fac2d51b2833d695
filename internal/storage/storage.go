package storage

import (
	"context"
	"errors"

	"github.com/creditdesk/credit-intake-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// ApplicationStore captures credit-application persistence. UpdateStatus is
// last-write-wins; there is no version check on concurrent updates.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app models.Application) (models.Application, error)
	GetApplication(ctx context.Context, id int64) (models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	ListApplicationsByUser(ctx context.Context, userID int64) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.Status) (models.Application, error)
}
