// Package service contains the business logic for the Tour Builder API.
// Services validate inputs, enforce ownership, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

// authorizeTour is the ownership guard shared by every mutating tour and
// step operation. It fetches the tour fresh on every call — ownership is
// never cached across requests — and distinguishes a missing tour
// (ErrNotFound) from someone else's tour (ErrForbidden).
// On success it returns the tour so callers don't re-read it.
func authorizeTour(ctx context.Context, tours repo.TourRepo, tourID, callerID uuid.UUID) (domain.Tour, error) {
	tour, err := tours.GetByID(ctx, tourID)
	if err != nil {
		return domain.Tour{}, err
	}
	if tour.AuthorID != callerID {
		return domain.Tour{}, fmt.Errorf("%w: caller is not the tour author", domain.ErrForbidden)
	}
	return tour, nil
}

// validate is the package-level validator instance; validator.New is
// expensive, so it is created once.
var validate = validator.New()

// validateTour enforces business rules common to tour Create and Update.
func validateTour(tour domain.Tour) error {
	if strings.TrimSpace(tour.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	return nil
}

// validateStep enforces business rules common to step Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - ImageURL, if set, must be a well-formed absolute URL.
func validateStep(step domain.Step) error {
	if strings.TrimSpace(step.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if step.ImageURL != "" {
		if err := validate.Var(step.ImageURL, "url"); err != nil {
			return fmt.Errorf("%w: image_url must be a valid URL", domain.ErrValidation)
		}
	}
	return nil
}
