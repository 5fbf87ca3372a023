package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products.
// Unless stated otherwise, queries only see live (not soft-deleted) rows.
type ProductRepository interface {
	// CreateWithItems persists a product together with all of its expanded
	// SKUs in a single transaction. Either everything commits or nothing does.
	CreateWithItems(ctx context.Context, product *Product, items []*ProductItem) error

	// FindByID finds a live product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDWithItems finds a live product with its items and their
	// size and color references eager-loaded
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDIncludingDeleted finds a product regardless of deletion state
	FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds live products matching the filter.
	// Supported filter keys: "category_id" (uuid.UUID),
	// "price_bracket" (PriceBracket).
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts live products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindAllUnpaged returns every live product
	FindAllUnpaged(ctx context.Context) ([]Product, error)

	// FindByCategory returns all live products in a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)

	// FindDeleted returns all soft-deleted products
	FindDeleted(ctx context.Context) ([]Product, error)

	// Save updates an existing product (including its deletion timestamp)
	Save(ctx context.Context, product *Product) error

	// Purge permanently removes a product and its items, whether live or
	// soft-deleted. Returns shared.ErrNotFound if no such product exists.
	Purge(ctx context.Context, id uuid.UUID) error

	// IncrementSearchCount atomically bumps the search counter by one,
	// stamps the search date and returns the updated product
	IncrementSearchCount(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindSearchedInMonth returns live products whose last search falls in
	// the given month, ordered by search count descending
	FindSearchedInMonth(ctx context.Context, year int, month int) ([]Product, error)
}

// ProductItemRepository defines the persistence interface for SKUs
type ProductItemRepository interface {
	// FindByID finds a SKU by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductItem, error)

	// FindByProduct returns all SKUs of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductItem, error)
}

// CategoryRepository defines the persistence interface for categories
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll finds categories with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Count counts all categories
	Count(ctx context.Context) (int64, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Exists reports whether a category with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
