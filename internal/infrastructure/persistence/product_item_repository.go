package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductItemRepository implements ProductItemRepository using GORM
type GormProductItemRepository struct {
	db *gorm.DB
}

// NewGormProductItemRepository creates a new GormProductItemRepository
func NewGormProductItemRepository(db *gorm.DB) *GormProductItemRepository {
	return &GormProductItemRepository{db: db}
}

// FindByID finds a SKU by its ID with size and color loaded
func (r *GormProductItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductItem, error) {
	var item catalog.ProductItem
	if err := r.db.WithContext(ctx).
		Preload("Size").
		Preload("Color").
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByProduct returns all SKUs of a product
func (r *GormProductItemRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductItem, error) {
	var items []catalog.ProductItem
	if err := r.db.WithContext(ctx).
		Preload("Size").
		Preload("Color").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Ensure GormProductItemRepository implements ProductItemRepository
var _ catalog.ProductItemRepository = (*GormProductItemRepository)(nil)
