package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/metrics"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

const (
	// slugAlphabet is the character space for public slugs. 62 symbols at
	// slugLength characters gives 62^10 ≈ 8.4e17 possible slugs, so both
	// guessing and collisions are negligible.
	slugAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	slugLength   = 10

	// slugRetries bounds the regenerate-on-collision loop before the
	// conflict escalates as an internal failure.
	slugRetries = 5
)

// PublicationService toggles a tour between private and public.
// Publishing issues a fresh unguessable slug; unpublishing clears it.
// A retired slug is never mapped to any tour again.
type PublicationService struct {
	tours repo.TourRepo

	// newSlug generates a candidate slug. Swappable in tests to force
	// collisions.
	newSlug func() (string, error)
}

// NewPublicationService constructs a PublicationService backed by the
// provided TourRepo.
func NewPublicationService(tours repo.TourRepo) *PublicationService {
	return &PublicationService{tours: tours, newSlug: randomSlug}
}

// SetPublic flips the publication state of a tour after running the
// ownership guard.
//
// Publishing always issues a fresh slug, even if the tour is already
// public — republishing rotates the link and the previous slug goes dead.
// Unpublishing clears the slug; unpublishing an already-private tour is
// a no-op. Both fields change in a single statement, so the
// slug/is_public invariant holds after every call.
func (s *PublicationService) SetPublic(ctx context.Context, tourID, callerID uuid.UUID, isPublic bool) (domain.Tour, error) {
	if _, err := authorizeTour(ctx, s.tours, tourID, callerID); err != nil {
		return domain.Tour{}, fmt.Errorf("service.PublicationService.SetPublic: %w", err)
	}

	if !isPublic {
		result, err := s.tours.SetPublication(ctx, tourID, false, nil)
		if err != nil {
			return domain.Tour{}, fmt.Errorf("service.PublicationService.SetPublic: %w", err)
		}
		return result, nil
	}

	var result domain.Tour
	backoff := retry.WithMaxRetries(slugRetries, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		slug, err := s.newSlug()
		if err != nil {
			return err
		}
		updated, err := s.tours.SetPublication(ctx, tourID, true, &slug)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// Another tour holds this slug; regenerate and try again.
				return retry.RetryableError(err)
			}
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.PublicationService.SetPublic: %w", err)
	}

	metrics.ToursPublishedTotal.Inc()
	return result, nil
}

// randomSlug returns a slugLength-character string drawn from
// slugAlphabet using crypto/rand.
func randomSlug() (string, error) {
	buf := make([]byte, slugLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("service.randomSlug: %w", err)
	}
	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf), nil
}
