// Package repo contains all database access logic for the Tour Builder API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pmorales/tour-builder/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TourRepo defines the persistence operations for Tours.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TourRepo interface {
	// Create inserts a new tour and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). New tours
	// are always private with no slug.
	Create(ctx context.Context, tour domain.Tour) (domain.Tour, error)

	// GetByID retrieves a single tour by its UUID primary key.
	// Returns domain.ErrNotFound if no tour with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error)

	// ListByAuthor returns all tours owned by authorID ordered by
	// updated_at descending, each annotated with its step count.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error)

	// Update overwrites title and description of an existing tour, bumps
	// updated_at, and returns the updated record. Returns domain.ErrNotFound
	// if no tour with that ID exists.
	Update(ctx context.Context, tour domain.Tour) (domain.Tour, error)

	// Delete removes a tour by ID. The steps table cascades on tour
	// deletion, so this single statement removes the tour and all its
	// steps atomically. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetPublication updates is_public and public_slug together in one
	// statement, so the slug/is_public pair is never observable
	// half-applied. Pass a non-nil slug iff isPublic is true.
	// Returns domain.ErrConflict if the slug collides with another tour,
	// domain.ErrNotFound if the tour does not exist.
	SetPublication(ctx context.Context, id uuid.UUID, isPublic bool, slug *string) (domain.Tour, error)

	// GetBySlug retrieves a tour by its public slug, matching only tours
	// that are currently public. The slug match and the is_public filter
	// are one query, so a slug never resolves for a tour that has been
	// unpublished, even transiently.
	GetBySlug(ctx context.Context, slug string) (domain.Tour, error)
}

// pgTourRepo is the Postgres implementation of TourRepo.
type pgTourRepo struct {
	db db
}

// NewTourRepo constructs a TourRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTourRepo(db db) TourRepo {
	return &pgTourRepo{db: db}
}

// Create inserts a new tour row and returns the full persisted record.
func (r *pgTourRepo) Create(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	const q = `
		INSERT INTO tours (author_id, title, description)
		VALUES (@author_id, @title, @description)
		RETURNING id, author_id, title, description, is_public, public_slug, created_at, updated_at`

	args := pgx.NamedArgs{
		"author_id":   tour.AuthorID,
		"title":       tour.Title,
		"description": tour.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a tour by primary key.
func (r *pgTourRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	const q = `
		SELECT id, author_id, title, description, is_public, public_slug, created_at, updated_at
		FROM tours
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByAuthor returns the author's tours, most recently updated first.
// The step count is computed by the LEFT JOIN so tours without steps
// still appear with a count of zero.
func (r *pgTourRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error) {
	const q = `
		SELECT t.id, t.author_id, t.title, t.description, t.is_public, t.public_slug,
		       t.created_at, t.updated_at, count(s.id)
		FROM tours t
		LEFT JOIN steps s ON s.tour_id = t.id
		WHERE t.author_id = @author_id
		GROUP BY t.id
		ORDER BY t.updated_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"author_id": authorID})
	if err != nil {
		return nil, fmt.Errorf("repo.TourRepo.ListByAuthor: %w", err)
	}
	defer rows.Close()

	var tours []domain.TourSummary
	for rows.Next() {
		var (
			id    pgtype.UUID
			aid   pgtype.UUID
			slug  pgtype.Text
			count int64
			t     domain.TourSummary
		)
		err := rows.Scan(&id, &aid, &t.Title, &t.Description, &t.IsPublic, &slug,
			&t.CreatedAt, &t.UpdatedAt, &count)
		if err != nil {
			return nil, fmt.Errorf("repo.TourRepo.ListByAuthor: scan: %w", err)
		}
		t.ID = uuid.UUID(id.Bytes)
		t.AuthorID = uuid.UUID(aid.Bytes)
		if slug.Valid {
			s := slug.String
			t.PublicSlug = &s
		}
		t.StepCount = int(count)
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TourRepo.ListByAuthor: rows: %w", err)
	}

	return tours, nil
}

// Update overwrites the editable fields of a tour and returns the updated record.
func (r *pgTourRepo) Update(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	const q = `
		UPDATE tours
		SET title       = @title,
		    description = @description,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, author_id, title, description, is_public, public_slug, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          tour.ID,
		"title":       tour.Title,
		"description": tour.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a tour by primary key. Steps cascade at the schema level.
func (r *pgTourRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM tours WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TourRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TourRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// SetPublication flips the publication state and slug in one statement.
func (r *pgTourRepo) SetPublication(ctx context.Context, id uuid.UUID, isPublic bool, slug *string) (domain.Tour, error) {
	const q = `
		UPDATE tours
		SET is_public   = @is_public,
		    public_slug = @public_slug,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, author_id, title, description, is_public, public_slug, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          id,
		"is_public":   isPublic,
		"public_slug": slug, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTour(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Tour{}, fmt.Errorf("repo.TourRepo.SetPublication: %w", domain.ErrConflict)
		}
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.SetPublication: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a currently-public tour by slug.
func (r *pgTourRepo) GetBySlug(ctx context.Context, slug string) (domain.Tour, error) {
	const q = `
		SELECT id, author_id, title, description, is_public, public_slug, created_at, updated_at
		FROM tours
		WHERE public_slug = @slug AND is_public`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug})
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTour maps a single database row into a domain.Tour.
// It handles the UUID and nullable public_slug conversions.
func scanTour(s scanner) (domain.Tour, error) {
	var (
		t    domain.Tour
		id   pgtype.UUID
		aid  pgtype.UUID
		slug pgtype.Text
	)

	err := s.Scan(&id, &aid, &t.Title, &t.Description, &t.IsPublic, &slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tour{}, domain.ErrNotFound
		}
		return domain.Tour{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.AuthorID = uuid.UUID(aid.Bytes)
	if slug.Valid {
		s := slug.String
		t.PublicSlug = &s
	}

	return t, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
