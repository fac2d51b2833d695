package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creditdesk/credit-intake-be/internal/models"
	"github.com/creditdesk/credit-intake-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore        = (*Store)(nil)
	_ storage.ApplicationStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users and applications.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			id BIGSERIAL PRIMARY KEY,
			full_name TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			phone TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			user_id BIGINT NOT NULL REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS applications_user_id_idx ON applications (user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// withTx runs fn inside a transaction that commits on success and rolls back
// on any failure, leaving no partial record.
func (s *Store) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (username, password_hash)
	VALUES ($1, $2)
	RETURNING id, username, password_hash, created_at;
	`
	var created models.User
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, query, user.Username, user.PasswordHash)
		var err error
		created, err = scanUser(row)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
	SELECT id, username, password_hash, created_at
	FROM users
	WHERE username = $1;
	`
	row := s.pool.QueryRow(ctx, query, username)
	return scanUser(row)
}

// CreateApplication inserts an application with its pre-screened status.
func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	const query = `
	INSERT INTO applications (full_name, amount, phone, status, user_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, full_name, amount, phone, status, created_at, user_id;
	`
	var created models.Application
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, query, app.FullName, app.Amount, app.Phone, app.Status, app.UserID)
		var err error
		created, err = scanApplication(row)
		return err
	})
	if err != nil {
		return models.Application{}, err
	}
	return created, nil
}

// GetApplication fetches a single application by id.
func (s *Store) GetApplication(ctx context.Context, id int64) (models.Application, error) {
	const query = `
	SELECT id, full_name, amount, phone, status, created_at, user_id
	FROM applications
	WHERE id = $1;
	`
	row := s.pool.QueryRow(ctx, query, id)
	return scanApplication(row)
}

// ListApplications returns every application, oldest first.
func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	const query = `
	SELECT id, full_name, amount, phone, status, created_at, user_id
	FROM applications
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ListApplicationsByUser returns the applications owned by userID, oldest first.
func (s *Store) ListApplicationsByUser(ctx context.Context, userID int64) ([]models.Application, error) {
	const query = `
	SELECT id, full_name, amount, phone, status, created_at, user_id
	FROM applications
	WHERE user_id = $1
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications for user %d: %w", userID, err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// UpdateApplicationStatus overwrites the status of an existing application.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status models.Status) (models.Application, error) {
	const query = `
	UPDATE applications
	SET status = $2
	WHERE id = $1
	RETURNING id, full_name, amount, phone, status, created_at, user_id;
	`
	var updated models.Application
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, query, id, status)
		var err error
		updated, err = scanApplication(row)
		return err
	})
	if err != nil {
		return models.Application{}, err
	}
	return updated, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanApplication(row pgx.Row) (models.Application, error) {
	var app models.Application
	if err := row.Scan(&app.ID, &app.FullName, &app.Amount, &app.Phone, &app.Status, &app.CreatedAt, &app.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Application{}, storage.ErrNotFound
		}
		return models.Application{}, err
	}
	return app, nil
}

func collectApplications(rows pgx.Rows) ([]models.Application, error) {
	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}
