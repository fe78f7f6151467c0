package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step is one item in a tour's sequence. Order is a positive integer,
// unique within the owning tour; gaps are permitted (deleting a step
// does not renumber the rest).
type Step struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tour_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StepUpdate carries a partial update to a step. Nil fields are left
// untouched. Order is deliberately absent: order is assigned at append
// time and never reassigned through this path.
type StepUpdate struct {
	Title    *string
	Content  *string
	ImageURL *string
}
