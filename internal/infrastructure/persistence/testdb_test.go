package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/review"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey,
// same as against Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Category{},
		&catalog.Size{},
		&catalog.Color{},
		&catalog.Product{},
		&catalog.ProductItem{},
		&ordering.Order{},
		&ordering.OrderLine{},
		&review.Review{},
	)
	require.NoError(t, err)

	return db
}

// seedCategory inserts a category fixture
func seedCategory(t *testing.T, db *gorm.DB) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory("Shirts", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)
	return category
}

// seedSizeColor inserts one size and one color fixture
func seedSizeColor(t *testing.T, db *gorm.DB) (*catalog.Size, *catalog.Color) {
	t.Helper()
	size := &catalog.Size{ID: uuid.New(), Name: "M"}
	color := &catalog.Color{ID: uuid.New(), Name: "Navy", Code: "#001f3f"}
	require.NoError(t, db.Create(size).Error)
	require.NoError(t, db.Create(color).Error)
	return size, color
}

// seedProduct inserts a product with one SKU and returns both
func seedProduct(t *testing.T, db *gorm.DB, categoryID, sizeID, colorID uuid.UUID) (*catalog.Product, *catalog.ProductItem) {
	t.Helper()
	product, err := catalog.NewProduct(categoryID, "Linen Shirt", "Relaxed fit linen shirt", catalog.ProductStatusActive, "", 1_500_000, 1_200_000)
	require.NoError(t, err)
	item, err := catalog.NewProductItem(product.ID, sizeID, colorID, 10, "")
	require.NoError(t, err)

	repo := NewGormProductRepository(db)
	require.NoError(t, repo.CreateWithItems(context.Background(), product, []*catalog.ProductItem{item}))
	return product, item
}
