package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
// Soft deletion is an explicit column: live queries always constrain
// deleted_at IS NULL rather than relying on a driver-level scope.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// CreateWithItems persists a product and its expanded SKUs in one transaction
func (r *GormProductRepository) CreateWithItems(ctx context.Context, product *catalog.Product, items []*catalog.ProductItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a live product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDWithItems finds a live product with its SKUs and their size and
// color references eager-loaded
func (r *GormProductRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Size").
		Preload("Items.Color").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDIncludingDeleted finds a product regardless of deletion state
func (r *GormProductRepository) FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds live products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.liveQuery(ctx), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count counts live products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.liveQuery(ctx), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllUnpaged returns every live product, newest first
func (r *GormProductRepository) FindAllUnpaged(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.liveQuery(ctx).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory returns all live products in a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.liveQuery(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindDeleted returns all soft-deleted products, most recently deleted first
func (r *GormProductRepository) FindDeleted(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save updates an existing product, including its deletion timestamp.
// Select("*") forces NULL writes so Restore can clear deleted_at.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Select("*").Omit("Items").Save(product).Error
}

// Purge permanently removes a product and its SKUs
func (r *GormProductRepository) Purge(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.ProductItem{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// IncrementSearchCount atomically bumps the search counter by one and
// stamps the search date. The increment happens in SQL, so concurrent
// calls never lose updates.
func (r *GormProductRepository) IncrementSearchCount(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"search_count":      gorm.Expr("search_count + 1"),
			"search_count_date": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// FindSearchedInMonth returns live products whose last search falls in the
// given month, ordered by search count descending
func (r *GormProductRepository) FindSearchedInMonth(ctx context.Context, year int, month int) ([]catalog.Product, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var products []catalog.Product
	if err := r.liveQuery(ctx).
		Where("search_count_date >= ? AND search_count_date < ?", start, end).
		Order("search_count DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// liveQuery scopes the model to non-deleted rows
func (r *GormProductRepository) liveQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("deleted_at IS NULL")
}

// applyFilter applies filter options plus pagination and ordering
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "price_bracket":
			if bracket, ok := value.(catalog.PriceBracket); ok {
				if low, high, ok := bracket.Bounds(); ok {
					query = query.Where("price_sale >= ? AND price_sale <= ?", low, high)
				}
			}
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
