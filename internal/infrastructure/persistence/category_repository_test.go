package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestGormCategoryRepository_FindAll(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)

	for i := 0; i < 5; i++ {
		category, err := catalog.NewCategory(fmt.Sprintf("Category %d", i), "")
		require.NoError(t, err)
		category.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(category).Error)
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 3

	page1, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page1, 3)

	filter.Page = 2
	page2, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestGormCategoryRepository_Save(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	category := seedCategory(t, db)

	require.NoError(t, category.Rename("Outerwear"))
	require.NoError(t, repo.Save(ctx, category))

	found, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Outerwear", found.Name)
}

func TestGormCategoryRepository_Exists(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	category := seedCategory(t, db)

	exists, err := repo.Exists(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
