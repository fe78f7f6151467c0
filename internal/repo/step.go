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

// StepRepo defines the persistence operations for Steps.
// All write and single-read operations are scoped by tourID to enforce
// ownership: a step id reused under the wrong tour is ErrNotFound, never
// a silent success.
type StepRepo interface {
	// Create inserts a new step at the end of the tour's sequence and
	// returns the persisted record. The order value is computed inside
	// the INSERT itself (max existing order + 1, or 1 for an empty tour),
	// so the read of the current maximum and the write are one atomic
	// statement. If two concurrent appends still collide on the
	// (tour_id, step_order) unique constraint, the loser gets
	// domain.ErrConflict and the service retries.
	Create(ctx context.Context, step domain.Step) (domain.Step, error)

	// GetByID retrieves a single step by its UUID, scoped to the given tourID.
	// Returns domain.ErrNotFound if no step with that ID exists under that tour.
	GetByID(ctx context.Context, tourID, stepID uuid.UUID) (domain.Step, error)

	// ListByTour returns all steps for a tour ordered by step_order ascending.
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]domain.Step, error)

	// Update overwrites the editable fields of a step, scoped to the given
	// tourID. Order is never touched by updates.
	// Returns domain.ErrNotFound if no step with that ID exists under that tour.
	Update(ctx context.Context, step domain.Step) (domain.Step, error)

	// Delete removes a step by ID, scoped to the given tourID. Remaining
	// steps keep their order values; gaps are permitted.
	// Returns domain.ErrNotFound if no step with that ID exists under that tour.
	Delete(ctx context.Context, tourID, stepID uuid.UUID) error
}

// pgStepRepo is the Postgres implementation of StepRepo.
type pgStepRepo struct {
	db db
}

// NewStepRepo constructs a StepRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStepRepo(db db) StepRepo {
	return &pgStepRepo{db: db}
}

// Create appends a step to the tour's sequence. The INSERT ... SELECT
// computes the next order value in the same statement as the insert;
// MAX over zero rows is NULL, so COALESCE starts empty tours at 1.
func (r *pgStepRepo) Create(ctx context.Context, step domain.Step) (domain.Step, error) {
	const q = `
		INSERT INTO steps (tour_id, title, content, image_url, step_order)
		SELECT @tour_id, @title, @content, @image_url, COALESCE(MAX(step_order), 0) + 1
		FROM steps
		WHERE tour_id = @tour_id
		RETURNING id, tour_id, title, content, image_url, step_order, created_at, updated_at`

	args := pgx.NamedArgs{
		"tour_id":   step.TourID,
		"title":     step.Title,
		"content":   step.Content,
		"image_url": step.ImageURL,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStep(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Step{}, fmt.Errorf("repo.StepRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Step{}, fmt.Errorf("repo.StepRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a step by primary key, scoped to its tour.
func (r *pgStepRepo) GetByID(ctx context.Context, tourID, stepID uuid.UUID) (domain.Step, error) {
	const q = `
		SELECT id, tour_id, title, content, image_url, step_order, created_at, updated_at
		FROM steps
		WHERE id = @id AND tour_id = @tour_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stepID, "tour_id": tourID})
	result, err := scanStep(row)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTour returns a tour's steps in display order.
func (r *pgStepRepo) ListByTour(ctx context.Context, tourID uuid.UUID) ([]domain.Step, error) {
	const q = `
		SELECT id, tour_id, title, content, image_url, step_order, created_at, updated_at
		FROM steps
		WHERE tour_id = @tour_id
		ORDER BY step_order`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"tour_id": tourID})
	if err != nil {
		return nil, fmt.Errorf("repo.StepRepo.ListByTour: %w", err)
	}
	defer rows.Close()

	var steps []domain.Step
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StepRepo.ListByTour: scan: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StepRepo.ListByTour: rows: %w", err)
	}

	return steps, nil
}

// Update overwrites the editable fields of a step and returns the updated record.
func (r *pgStepRepo) Update(ctx context.Context, step domain.Step) (domain.Step, error) {
	const q = `
		UPDATE steps
		SET title      = @title,
		    content    = @content,
		    image_url  = @image_url,
		    updated_at = now()
		WHERE id = @id AND tour_id = @tour_id
		RETURNING id, tour_id, title, content, image_url, step_order, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":        step.ID,
		"tour_id":   step.TourID,
		"title":     step.Title,
		"content":   step.Content,
		"image_url": step.ImageURL,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStep(row)
	if err != nil {
		return domain.Step{}, fmt.Errorf("repo.StepRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a step by primary key, scoped to its tour.
func (r *pgStepRepo) Delete(ctx context.Context, tourID, stepID uuid.UUID) error {
	const q = `DELETE FROM steps WHERE id = @id AND tour_id = @tour_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stepID, "tour_id": tourID})
	if err != nil {
		return fmt.Errorf("repo.StepRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StepRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanStep maps a single database row into a domain.Step.
func scanStep(s scanner) (domain.Step, error) {
	var (
		st  domain.Step
		id  pgtype.UUID
		tid pgtype.UUID
	)

	err := s.Scan(&id, &tid, &st.Title, &st.Content, &st.ImageURL, &st.Order, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Step{}, domain.ErrNotFound
		}
		return domain.Step{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TourID = uuid.UUID(tid.Bytes)

	return st, nil
}
