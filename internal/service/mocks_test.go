package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

// mockTourRepo is a hand-written test double for repo.TourRepo.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.
type mockTourRepo struct {
	create         func(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Tour, error)
	listByAuthor   func(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error)
	update         func(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	delete         func(ctx context.Context, id uuid.UUID) error
	setPublication func(ctx context.Context, id uuid.UUID, isPublic bool, slug *string) (domain.Tour, error)
	getBySlug      func(ctx context.Context, slug string) (domain.Tour, error)
}

func (m *mockTourRepo) Create(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	return m.create(ctx, tour)
}
func (m *mockTourRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	return m.getByID(ctx, id)
}
func (m *mockTourRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error) {
	return m.listByAuthor(ctx, authorID)
}
func (m *mockTourRepo) Update(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	return m.update(ctx, tour)
}
func (m *mockTourRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTourRepo) SetPublication(ctx context.Context, id uuid.UUID, isPublic bool, slug *string) (domain.Tour, error) {
	return m.setPublication(ctx, id, isPublic, slug)
}
func (m *mockTourRepo) GetBySlug(ctx context.Context, slug string) (domain.Tour, error) {
	return m.getBySlug(ctx, slug)
}

// compile-time check: mockTourRepo must satisfy repo.TourRepo.
var _ repo.TourRepo = (*mockTourRepo)(nil)

// mockStepRepo is a hand-written test double for repo.StepRepo.
type mockStepRepo struct {
	create     func(ctx context.Context, step domain.Step) (domain.Step, error)
	getByID    func(ctx context.Context, tourID, stepID uuid.UUID) (domain.Step, error)
	listByTour func(ctx context.Context, tourID uuid.UUID) ([]domain.Step, error)
	update     func(ctx context.Context, step domain.Step) (domain.Step, error)
	delete     func(ctx context.Context, tourID, stepID uuid.UUID) error
}

func (m *mockStepRepo) Create(ctx context.Context, step domain.Step) (domain.Step, error) {
	return m.create(ctx, step)
}
func (m *mockStepRepo) GetByID(ctx context.Context, tourID, stepID uuid.UUID) (domain.Step, error) {
	return m.getByID(ctx, tourID, stepID)
}
func (m *mockStepRepo) ListByTour(ctx context.Context, tourID uuid.UUID) ([]domain.Step, error) {
	return m.listByTour(ctx, tourID)
}
func (m *mockStepRepo) Update(ctx context.Context, step domain.Step) (domain.Step, error) {
	return m.update(ctx, step)
}
func (m *mockStepRepo) Delete(ctx context.Context, tourID, stepID uuid.UUID) error {
	return m.delete(ctx, tourID, stepID)
}

// compile-time check: mockStepRepo must satisfy repo.StepRepo.
var _ repo.StepRepo = (*mockStepRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

// ownedTour returns a tour owned by the given author, plus a TourRepo
// whose getByID serves it. Most guard tests start here.
func ownedTour(authorID uuid.UUID) (domain.Tour, *mockTourRepo) {
	tour := domain.Tour{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    "Onboarding",
	}
	tours := &mockTourRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Tour, error) {
			if id != tour.ID {
				return domain.Tour{}, domain.ErrNotFound
			}
			return tour, nil
		},
	}
	return tour, tours
}

func strPtr(s string) *string { return &s }
