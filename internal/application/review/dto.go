package review

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/review"
)

// ObjectStorage defines the interface for storing uploaded review images.
// Implemented by the infrastructure layer.
type ObjectStorage interface {
	// Put stores the content under the given key and returns the stored path
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes a stored object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ImageUpload carries one uploaded image through the application layer
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// SubmitReviewRequest represents a request to review a purchased SKU
type SubmitReviewRequest struct {
	ProductItemID uuid.UUID `form:"product_item_id" binding:"required"`
	Content       string    `form:"content" binding:"required,max=500"`
	Rating        int       `form:"rating" binding:"required,min=1,max=5"`

	Image *ImageUpload `form:"-"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductItemID uuid.UUID `json:"product_item_id"`
	UserID        uuid.UUID `json:"user_id"`
	Content       string    `json:"content"`
	Rating        int       `json:"rating"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:            r.ID,
		ProductItemID: r.ProductItemID,
		UserID:        r.UserID,
		Content:       r.Content,
		Rating:        r.Rating,
		Image:         r.Image,
		CreatedAt:     r.CreatedAt,
	}
}

// ToReviewResponses converts a slice of domain Reviews to ReviewResponses
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
