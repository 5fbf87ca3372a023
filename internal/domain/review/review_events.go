package review

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the review domain
const (
	EventReviewSubmitted = "review.submitted"
	EventReviewDeleted   = "review.deleted"
)

// ReviewSubmittedEvent is raised when a verified review is created
type ReviewSubmittedEvent struct {
	shared.BaseDomainEvent
	Rating int `json:"rating"`
}

// NewReviewSubmittedEvent creates a new ReviewSubmittedEvent
func NewReviewSubmittedEvent(r *Review) *ReviewSubmittedEvent {
	return &ReviewSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReviewSubmitted, r.ID, "Review"),
		Rating:          r.Rating,
	}
}

// ReviewDeletedEvent is raised when an owner removes their review
type ReviewDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewReviewDeletedEvent creates a new ReviewDeletedEvent
func NewReviewDeletedEvent(r *Review) *ReviewDeletedEvent {
	return &ReviewDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReviewDeleted, r.ID, "Review"),
	}
}
