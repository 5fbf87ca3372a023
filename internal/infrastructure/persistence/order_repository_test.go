package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, userID, itemID uuid.UUID, status ordering.OrderStatus) *ordering.Order {
	t.Helper()

	order, err := ordering.NewOrder(userID, uuid.NewString(), "card", "12 Elm St", "12 Elm St")
	require.NoError(t, err)
	line, err := ordering.NewOrderLine(order.ID, itemID, 2, 1_200_000)
	require.NoError(t, err)
	require.NoError(t, order.AddLine(line))
	order.Status = status
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestGormOrderRepository_HasCompletedPurchase(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	category := seedCategory(t, db)
	size, color := seedSizeColor(t, db)
	_, item := seedProduct(t, db, category.ID, size.ID, color.ID)

	buyer := uuid.New()
	windowShopper := uuid.New()
	seedOrder(t, db, buyer, item.ID, ordering.OrderStatusCompleted)
	seedOrder(t, db, windowShopper, item.ID, ordering.OrderStatusPending)

	t.Run("completed order grants purchase", func(t *testing.T) {
		ok, err := repo.HasCompletedPurchase(ctx, buyer, item.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("pending order does not count", func(t *testing.T) {
		ok, err := repo.HasCompletedPurchase(ctx, windowShopper, item.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("another user's purchase does not transfer", func(t *testing.T) {
		ok, err := repo.HasCompletedPurchase(ctx, uuid.New(), item.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("purchase of a different SKU does not count", func(t *testing.T) {
		ok, err := repo.HasCompletedPurchase(ctx, buyer, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGormOrderRepository_FindCompletedBetween(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	category := seedCategory(t, db)
	size, color := seedSizeColor(t, db)
	_, item := seedProduct(t, db, category.ID, size.ID, color.ID)

	userID := uuid.New()
	inside := seedOrder(t, db, userID, item.ID, ordering.OrderStatusCompleted)
	pending := seedOrder(t, db, userID, item.ID, ordering.OrderStatusPending)
	outside := seedOrder(t, db, userID, item.ID, ordering.OrderStatusCompleted)
	require.NoError(t, db.Model(&ordering.Order{}).
		Where("id = ?", outside.ID).
		Update("created_at", time.Now().AddDate(0, -2, 0)).Error)

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	orders, err := repo.FindCompletedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, inside.ID, orders[0].ID)
	assert.NotEqual(t, pending.ID, orders[0].ID)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, item.ID, orders[0].Lines[0].ProductItemID)
}

func TestGormOrderRepository_FindByUser(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	category := seedCategory(t, db)
	size, color := seedSizeColor(t, db)
	_, item := seedProduct(t, db, category.ID, size.ID, color.ID)

	userID := uuid.New()
	seedOrder(t, db, userID, item.ID, ordering.OrderStatusCompleted)
	seedOrder(t, db, userID, item.ID, ordering.OrderStatusPending)
	seedOrder(t, db, uuid.New(), item.ID, ordering.OrderStatusCompleted)

	orders, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, userID, o.UserID)
	}
}
