package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByUser returns all orders of a user, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindCompletedBetween returns completed orders created in [start, end)
func (r *GormOrderRepository) FindCompletedBetween(ctx context.Context, start, end time.Time) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ? AND created_at >= ? AND created_at < ?", ordering.OrderStatusCompleted, start, end).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// HasCompletedPurchase reports whether a completed order of the user
// contains the given SKU
func (r *GormOrderRepository) HasCompletedPurchase(ctx context.Context, userID, productItemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_lines.product_item_id = ?",
			userID, ordering.OrderStatusCompleted, productItemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
