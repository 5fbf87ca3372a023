package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestGormProductRepository_CreateWithItems(t *testing.T) {
	ctx := context.Background()

	t.Run("persists product and SKUs together", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)

		product, _ := seedProduct(t, db, category.ID, size.ID, color.ID)

		loaded, err := repo.FindByIDWithItems(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, size.ID, loaded.Items[0].SizeID)
		require.NotNil(t, loaded.Items[0].Size)
		assert.Equal(t, "M", loaded.Items[0].Size.Name)
		require.NotNil(t, loaded.Items[0].Color)
		assert.Equal(t, "Navy", loaded.Items[0].Color.Name)
	})

	t.Run("rolls back everything on a duplicate SKU", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)

		product, err := catalog.NewProduct(category.ID, "Linen Shirt", "Relaxed fit linen shirt", catalog.ProductStatusActive, "", 1_500_000, 1_200_000)
		require.NoError(t, err)
		first, err := catalog.NewProductItem(product.ID, size.ID, color.ID, 5, "")
		require.NoError(t, err)
		second, err := catalog.NewProductItem(product.ID, size.ID, color.ID, 7, "")
		require.NoError(t, err)

		err = repo.CreateWithItems(ctx, product, []*catalog.ProductItem{first, second})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		// the product row must not survive the failed transaction
		_, err = repo.FindByIDIncludingDeleted(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deleted products disappear from live queries", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)
		product, _ := seedProduct(t, db, category.ID, size.ID, color.ID)

		require.NoError(t, product.SoftDelete())
		require.NoError(t, repo.Save(ctx, product))

		_, err := repo.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		all, err := repo.FindAllUnpaged(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		deleted, err := repo.FindDeleted(ctx)
		require.NoError(t, err)
		require.Len(t, deleted, 1)
		assert.Equal(t, product.ID, deleted[0].ID)

		found, err := repo.FindByIDIncludingDeleted(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, found.IsDeleted())
	})

	t.Run("restore clears the deletion stamp in the database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)
		product, _ := seedProduct(t, db, category.ID, size.ID, color.ID)

		require.NoError(t, product.SoftDelete())
		require.NoError(t, repo.Save(ctx, product))
		require.NoError(t, product.Restore())
		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, found.DeletedAt)
	})

	t.Run("purge removes the product and its SKUs for good", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		itemRepo := NewGormProductItemRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)
		product, item := seedProduct(t, db, category.ID, size.ID, color.ID)

		require.NoError(t, repo.Purge(ctx, product.ID))

		_, err := repo.FindByIDIncludingDeleted(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = itemRepo.FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("purging a missing product reports not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)

		err := repo.Purge(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_PriceBracketFilter(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db)

	prices := []int64{900_000, 1_000_000, 2_000_000, 2_000_001}
	for _, price := range prices {
		product, err := catalog.NewProduct(category.ID, "Shirt", "Shirt", catalog.ProductStatusActive, "", price, price)
		require.NoError(t, err)
		require.NoError(t, db.Create(product).Error)
	}

	filter := shared.DefaultFilter()
	filter.Filters["price_bracket"] = catalog.PriceBracket1To2M

	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)

	// both bounds are inclusive on the sale price
	require.Len(t, products, 2)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.PriceSale, int64(1_000_000))
		assert.LessOrEqual(t, p.PriceSale, int64(2_000_000))
	}

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormProductRepository_Pagination(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	category := seedCategory(t, db)

	for i := 0; i < 12; i++ {
		product, err := catalog.NewProduct(category.ID, "Shirt", "Shirt", catalog.ProductStatusActive, "", 1_000_000, 1_000_000)
		require.NoError(t, err)
		product.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(product).Error)
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 10

	page1, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page1, 10)

	filter.Page = 2
	page2, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	total, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
}

func TestGormProductRepository_SearchTracking(t *testing.T) {
	ctx := context.Background()

	t.Run("increment bumps the counter and stamps the date", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)
		product, _ := seedProduct(t, db, category.ID, size.ID, color.ID)

		updated, err := repo.IncrementSearchCount(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.SearchCount)
		require.NotNil(t, updated.SearchCountDate)

		updated, err = repo.IncrementSearchCount(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.SearchCount)
	})

	t.Run("incrementing a missing product reports not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)

		_, err := repo.IncrementSearchCount(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("month listing orders by search count descending", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)

		popular, err := catalog.NewProduct(category.ID, "Popular", "Popular", catalog.ProductStatusActive, "", 1_000_000, 1_000_000)
		require.NoError(t, err)
		quiet, err := catalog.NewProduct(category.ID, "Quiet", "Quiet", catalog.ProductStatusActive, "", 1_000_000, 1_000_000)
		require.NoError(t, err)
		require.NoError(t, db.Create(popular).Error)
		require.NoError(t, db.Create(quiet).Error)

		for i := 0; i < 3; i++ {
			_, err = repo.IncrementSearchCount(ctx, popular.ID)
			require.NoError(t, err)
		}
		_, err = repo.IncrementSearchCount(ctx, quiet.ID)
		require.NoError(t, err)

		now := time.Now()
		ranked, err := repo.FindSearchedInMonth(ctx, now.Year(), int(now.Month()))
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, popular.ID, ranked[0].ID)
		assert.Equal(t, quiet.ID, ranked[1].ID)
	})

	t.Run("products searched in another month are excluded", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormProductRepository(db)
		category := seedCategory(t, db)
		size, color := seedSizeColor(t, db)
		product, _ := seedProduct(t, db, category.ID, size.ID, color.ID)

		lastMonth := time.Now().AddDate(0, -1, 0)
		require.NoError(t, db.Model(&catalog.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{"search_count": 5, "search_count_date": lastMonth}).Error)

		now := time.Now()
		ranked, err := repo.FindSearchedInMonth(ctx, now.Year(), int(now.Month()))
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})
}
