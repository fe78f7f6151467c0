package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

// appendRetries bounds how many times an append is retried when two
// concurrent appends to the same tour race on the (tour_id, step_order)
// unique constraint.
const appendRetries = 3

// StepService implements business logic for Step operations.
// Steps have no independent ownership: every operation authorizes
// against the parent tour, and repo calls are scoped by tour ID so a
// step ID reused under the wrong tour reads as not found.
type StepService struct {
	tours repo.TourRepo
	steps repo.StepRepo
}

// NewStepService constructs a StepService backed by the provided repos.
func NewStepService(tours repo.TourRepo, steps repo.StepRepo) *StepService {
	return &StepService{tours: tours, steps: steps}
}

// Add validates and appends a step to the end of the tour's sequence.
// The order value is assigned atomically by the repo; a concurrent
// append that loses the race on the uniqueness constraint is retried a
// bounded number of times before the conflict surfaces.
func (s *StepService) Add(ctx context.Context, callerID uuid.UUID, step domain.Step) (domain.Step, error) {
	if _, err := authorizeTour(ctx, s.tours, step.TourID, callerID); err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Add: %w", err)
	}
	if err := validateStep(step); err != nil {
		return domain.Step{}, err
	}

	var result domain.Step
	backoff := retry.WithMaxRetries(appendRetries, retry.NewConstant(5*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		created, err := s.steps.Create(ctx, step)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Add: %w", err)
	}
	return result, nil
}

// Update applies a partial update to a step: nil fields in upd are left
// untouched. The scoped read also verifies the step actually belongs to
// the tour the caller named.
func (s *StepService) Update(ctx context.Context, tourID, stepID, callerID uuid.UUID, upd domain.StepUpdate) (domain.Step, error) {
	if _, err := authorizeTour(ctx, s.tours, tourID, callerID); err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Update: %w", err)
	}

	step, err := s.steps.GetByID(ctx, tourID, stepID)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Update: %w", err)
	}

	if upd.Title != nil {
		step.Title = *upd.Title
	}
	if upd.Content != nil {
		step.Content = *upd.Content
	}
	if upd.ImageURL != nil {
		step.ImageURL = *upd.ImageURL
	}
	if err := validateStep(step); err != nil {
		return domain.Step{}, err
	}

	result, err := s.steps.Update(ctx, step)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a step from its tour. Remaining steps keep their order
// values; no renumbering occurs.
func (s *StepService) Delete(ctx context.Context, tourID, stepID, callerID uuid.UUID) error {
	if _, err := authorizeTour(ctx, s.tours, tourID, callerID); err != nil {
		return fmt.Errorf("service.StepService.Delete: %w", err)
	}
	if err := s.steps.Delete(ctx, tourID, stepID); err != nil {
		return fmt.Errorf("service.StepService.Delete: %w", err)
	}
	return nil
}
