package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pmorales/tour-builder/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByEmail retrieves a user by email.
	// Returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// Create inserts a new user row and returns the full persisted record.
func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, name, password_hash)
		VALUES (@email, @name, @password_hash)
		RETURNING id, email, name, password_hash, created_at`

	args := pgx.NamedArgs{
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

// GetByEmail retrieves a user by email.
func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
