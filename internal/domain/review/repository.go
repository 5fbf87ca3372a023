package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines the persistence interface for reviews.
//
// Create must be backed by a unique constraint on (user, product item) so
// that two racing submissions cannot both succeed; a constraint violation
// is reported as shared.ErrAlreadyExists.
type ReviewRepository interface {
	// Create inserts a new review
	Create(ctx context.Context, r *Review) error

	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// ExistsForUserAndItem reports whether the user already reviewed the SKU
	ExistsForUserAndItem(ctx context.Context, userID, productItemID uuid.UUID) (bool, error)

	// FindByProduct returns all reviews for any SKU of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)

	// FindByUser returns all reviews written by a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)

	// Delete removes a review permanently
	Delete(ctx context.Context, id uuid.UUID) error
}
