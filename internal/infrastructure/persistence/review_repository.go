package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a new review. The unique index on (user_id,
// product_item_id) makes the one-review-per-user rule hold even when two
// submissions race; the violation surfaces as shared.ErrAlreadyExists.
func (r *GormReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rv review.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// ExistsForUserAndItem reports whether the user already reviewed the SKU
func (r *GormReviewRepository) ExistsForUserAndItem(ctx context.Context, userID, productItemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("user_id = ? AND product_item_id = ?", userID, productItemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByProduct returns all reviews for any SKU of a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]review.Review, error) {
	var reviews []review.Review
	if err := r.db.WithContext(ctx).
		Joins("JOIN product_items ON product_items.id = reviews.product_item_id").
		Where("product_items.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUser returns all reviews written by a user, newest first
func (r *GormReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]review.Review, error) {
	var reviews []review.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Delete removes a review permanently
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&review.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ review.ReviewRepository = (*GormReviewRepository)(nil)
