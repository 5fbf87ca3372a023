package review

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
)

// ReviewImagePrefix is the storage prefix for review images
const ReviewImagePrefix = "uploads/comments"

// Metrics receives counters emitted by the review service. A nil Metrics
// disables emission.
type Metrics interface {
	RecordReviewSubmitted(ctx context.Context)
	RecordReviewRejected(ctx context.Context, reason string)
}

// ReviewService gates review submission behind a verified purchase: only a
// user with a completed order containing the SKU may review it, once.
type ReviewService struct {
	reviewRepo review.ReviewRepository
	orderRepo  ordering.OrderRepository
	itemRepo   catalog.ProductItemRepository
	storage    ObjectStorage
	metrics    Metrics
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.ReviewRepository,
	orderRepo ordering.OrderRepository,
	itemRepo catalog.ProductItemRepository,
	storage ObjectStorage,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		storage:    storage,
	}
}

// SetMetrics injects the telemetry sink after construction
func (s *ReviewService) SetMetrics(m Metrics) {
	s.metrics = m
}

func (s *ReviewService) rejected(ctx context.Context, reason string) {
	if s.metrics != nil {
		s.metrics.RecordReviewRejected(ctx, reason)
	}
}

// Submit creates a review for a purchased SKU. The purchase check and the
// duplicate check run before the insert; the unique constraint on
// (user, product item) backs them up, so a race between two submissions
// ends with exactly one stored review.
func (s *ReviewService) Submit(ctx context.Context, userID uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	if _, err := s.itemRepo.FindByID(ctx, req.ProductItemID); err != nil {
		return nil, err
	}

	purchased, err := s.orderRepo.HasCompletedPurchase(ctx, userID, req.ProductItemID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		s.rejected(ctx, "not_purchased")
		return nil, shared.NewDomainError("FORBIDDEN", "Only purchased products can be reviewed")
	}

	reviewed, err := s.reviewRepo.ExistsForUserAndItem(ctx, userID, req.ProductItemID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		s.rejected(ctx, "already_reviewed")
		return nil, shared.NewDomainError("FORBIDDEN", "You have already reviewed this product")
	}

	imagePath := ""
	if req.Image != nil {
		imagePath, err = s.storeImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
	}

	r, err := review.NewReview(userID, req.ProductItemID, req.Content, req.Rating, imagePath)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, r); err != nil {
		if imagePath != "" {
			_ = s.storage.Delete(ctx, imagePath)
		}
		// a concurrent submission won the constraint race
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.rejected(ctx, "already_reviewed")
			return nil, shared.NewDomainError("FORBIDDEN", "You have already reviewed this product")
		}
		return nil, err
	}
	logger.DrainDomainEvents(ctx, r)
	if s.metrics != nil {
		s.metrics.RecordReviewSubmitted(ctx)
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes a review. Only its author may delete it.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !r.IsOwnedBy(userID) {
		return shared.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	r.AddDomainEvent(review.NewReviewDeletedEvent(r))
	logger.DrainDomainEvents(ctx, r)
	if r.Image != "" {
		_ = s.storage.Delete(ctx, r.Image)
	}
	return nil
}

// ListByProduct returns all reviews across every SKU of a product
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

// ListByUser returns all reviews written by a user
func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]ReviewResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

func (s *ReviewService) storeImage(ctx context.Context, upload ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	key := fmt.Sprintf("%s/%s%s", ReviewImagePrefix, uuid.New().String(), ext)
	path, err := s.storage.Put(ctx, key, upload.ContentType, upload.Content)
	if err != nil {
		return "", fmt.Errorf("store review image: %w", err)
	}
	return path, nil
}
