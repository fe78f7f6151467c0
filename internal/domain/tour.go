// Package domain contains the core data types for the Tour Builder application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tour is an ordered collection of steps owned by exactly one user.
// A tour is the top-level aggregate; steps belong to a tour and never
// outlive it.
type Tour struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"` // immutable after creation
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	PublicSlug  *string   `json:"public_slug,omitempty"` // non-nil iff IsPublic
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TourSummary is a Tour annotated with its step count, as returned by
// the author's tour listing. StepCount is derived at query time and is
// never stored.
type TourSummary struct {
	Tour
	StepCount int `json:"step_count"`
}

// TourUpdate carries a partial update to a tour. Nil fields are left
// untouched.
type TourUpdate struct {
	Title       *string
	Description *string
}
