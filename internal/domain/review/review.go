package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	// MaxContentLength is the upper bound for review text
	MaxContentLength = 500
	// MinRating and MaxRating bound the star rating, inclusive
	MinRating = 1
	MaxRating = 5
)

// Review is a purchase-verified product review. At most one review exists
// per (user, SKU) pair, and a review may only exist when the user has a
// completed order containing that SKU.
type Review struct {
	shared.BaseAggregateRoot
	ProductItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_item,priority:2"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_item,priority:1"`
	Content       string    `gorm:"type:varchar(500);not null"`
	Rating        int       `gorm:"not null"`
	Image         string    `gorm:"type:varchar(500)"` // stored path, empty when no image was uploaded
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review after validating content and rating
func NewReview(userID, productItemID uuid.UUID, content string, rating int, imagePath string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if productItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product item ID cannot be empty")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Review content cannot be empty")
	}
	if len(content) > MaxContentLength {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Review content cannot exceed 500 characters")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	r := &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductItemID:     productItemID,
		UserID:            userID,
		Content:           content,
		Rating:            rating,
		Image:             imagePath,
	}

	r.AddDomainEvent(NewReviewSubmittedEvent(r))

	return r, nil
}

// IsOwnedBy reports whether the given user wrote this review
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// Touch updates the modification timestamp
func (r *Review) Touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
