package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

// TourService implements the tour lifecycle: create, list, read, partial
// update, and delete. Every operation on an existing tour runs the
// ownership guard before touching anything else.
type TourService struct {
	tours repo.TourRepo
	steps repo.StepRepo
}

// NewTourService constructs a TourService backed by the provided repos.
func NewTourService(tours repo.TourRepo, steps repo.StepRepo) *TourService {
	return &TourService{tours: tours, steps: steps}
}

// Create validates and persists a new tour owned by authorID.
// New tours are always private with no slug; no ownership check applies
// to a resource that does not exist yet.
func (s *TourService) Create(ctx context.Context, authorID uuid.UUID, title, description string) (domain.Tour, error) {
	tour := domain.Tour{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
	}
	if err := validateTour(tour); err != nil {
		return domain.Tour{}, err
	}
	result, err := s.tours.Create(ctx, tour)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Create: %w", err)
	}
	return result, nil
}

// ListMine returns all tours owned by authorID, most recently updated
// first, each annotated with its step count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TourService) ListMine(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error) {
	tours, err := s.tours.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("service.TourService.ListMine: %w", err)
	}
	if tours == nil {
		return []domain.TourSummary{}, nil
	}
	return tours, nil
}

// GetByID returns a tour and its steps in display order.
// Returns domain.ErrNotFound if the tour does not exist,
// domain.ErrForbidden if it is owned by someone else.
func (s *TourService) GetByID(ctx context.Context, tourID, callerID uuid.UUID) (domain.Tour, []domain.Step, error) {
	tour, err := authorizeTour(ctx, s.tours, tourID, callerID)
	if err != nil {
		return domain.Tour{}, nil, fmt.Errorf("service.TourService.GetByID: %w", err)
	}
	steps, err := s.steps.ListByTour(ctx, tourID)
	if err != nil {
		return domain.Tour{}, nil, fmt.Errorf("service.TourService.GetByID: %w", err)
	}
	if steps == nil {
		steps = []domain.Step{}
	}
	return tour, steps, nil
}

// Update applies a partial update to a tour: nil fields in upd are left
// untouched, never reset. The guard's read supplies the current values
// to merge into.
func (s *TourService) Update(ctx context.Context, tourID, callerID uuid.UUID, upd domain.TourUpdate) (domain.Tour, error) {
	tour, err := authorizeTour(ctx, s.tours, tourID, callerID)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w", err)
	}

	if upd.Title != nil {
		tour.Title = *upd.Title
	}
	if upd.Description != nil {
		tour.Description = *upd.Description
	}
	if err := validateTour(tour); err != nil {
		return domain.Tour{}, err
	}

	result, err := s.tours.Update(ctx, tour)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a tour and, through the schema's cascade, all its steps
// in one atomic statement.
func (s *TourService) Delete(ctx context.Context, tourID, callerID uuid.UUID) error {
	if _, err := authorizeTour(ctx, s.tours, tourID, callerID); err != nil {
		return fmt.Errorf("service.TourService.Delete: %w", err)
	}
	if err := s.tours.Delete(ctx, tourID); err != nil {
		return fmt.Errorf("service.TourService.Delete: %w", err)
	}
	return nil
}
