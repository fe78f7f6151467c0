package service

import (
	"context"
	"fmt"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

// PublicService is the anonymous read path. It never sees an identity:
// access is granted by knowing a currently-live slug, nothing else.
type PublicService struct {
	tours repo.TourRepo
	steps repo.StepRepo
}

// NewPublicService constructs a PublicService backed by the provided repos.
func NewPublicService(tours repo.TourRepo, steps repo.StepRepo) *PublicService {
	return &PublicService{tours: tours, steps: steps}
}

// ResolveBySlug returns the tour behind a public slug and its steps in
// display order. The repo matches the slug and the is_public flag in a
// single query, so a tour that has been unpublished — or had its link
// rotated — resolves as not found, never as stale content.
func (s *PublicService) ResolveBySlug(ctx context.Context, slug string) (domain.Tour, []domain.Step, error) {
	tour, err := s.tours.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Tour{}, nil, fmt.Errorf("service.PublicService.ResolveBySlug: %w", err)
	}
	steps, err := s.steps.ListByTour(ctx, tour.ID)
	if err != nil {
		return domain.Tour{}, nil, fmt.Errorf("service.PublicService.ResolveBySlug: %w", err)
	}
	if steps == nil {
		steps = []domain.Step{}
	}
	return tour, steps, nil
}
