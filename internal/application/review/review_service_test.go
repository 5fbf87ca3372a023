package review

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForUserAndItem(ctx context.Context, userID, productItemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]review.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]review.Review, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindCompletedBetween(ctx context.Context, start, end time.Time) ([]ordering.Order, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) HasCompletedPurchase(ctx context.Context, userID, productItemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of catalog.ProductItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductItem), args.Error(1)
}

func (m *MockItemRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductItem, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductItem), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type reviewServiceMocks struct {
	reviews *MockReviewRepository
	orders  *MockOrderRepository
	items   *MockItemRepository
	storage *MockObjectStorage
}

func newReviewService() (*ReviewService, reviewServiceMocks) {
	mocks := reviewServiceMocks{
		reviews: new(MockReviewRepository),
		orders:  new(MockOrderRepository),
		items:   new(MockItemRepository),
		storage: new(MockObjectStorage),
	}
	return NewReviewService(mocks.reviews, mocks.orders, mocks.items, mocks.storage), mocks
}

func testItem(t *testing.T) *catalog.ProductItem {
	t.Helper()
	item, err := catalog.NewProductItem(uuid.New(), uuid.New(), uuid.New(), 10, "")
	require.NoError(t, err)
	return item
}

func TestReviewService_Submit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("stores a review for a purchased SKU", func(t *testing.T) {
		service, mocks := newReviewService()
		item := testItem(t)

		mocks.items.On("FindByID", ctx, item.ID).Return(item, nil)
		mocks.orders.On("HasCompletedPurchase", ctx, userID, item.ID).Return(true, nil)
		mocks.reviews.On("ExistsForUserAndItem", ctx, userID, item.ID).Return(false, nil)
		mocks.reviews.On("Create", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

		resp, err := service.Submit(ctx, userID, SubmitReviewRequest{
			ProductItemID: item.ID,
			Content:       "Fits perfectly",
			Rating:        5,
		})

		require.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, 5, resp.Rating)
		mocks.reviews.AssertExpectations(t)
	})

	t.Run("rejects an anonymous submission", func(t *testing.T) {
		service, mocks := newReviewService()

		_, err := service.Submit(ctx, uuid.Nil, SubmitReviewRequest{
			ProductItemID: uuid.New(),
			Content:       "nice",
			Rating:        4,
		})

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		mocks.orders.AssertNotCalled(t, "HasCompletedPurchase", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a review without a completed purchase", func(t *testing.T) {
		service, mocks := newReviewService()
		item := testItem(t)

		mocks.items.On("FindByID", ctx, item.ID).Return(item, nil)
		mocks.orders.On("HasCompletedPurchase", ctx, userID, item.ID).Return(false, nil)

		_, err := service.Submit(ctx, userID, SubmitReviewRequest{
			ProductItemID: item.ID,
			Content:       "never bought this",
			Rating:        1,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		mocks.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a second review of the same SKU", func(t *testing.T) {
		service, mocks := newReviewService()
		item := testItem(t)

		mocks.items.On("FindByID", ctx, item.ID).Return(item, nil)
		mocks.orders.On("HasCompletedPurchase", ctx, userID, item.ID).Return(true, nil)
		mocks.reviews.On("ExistsForUserAndItem", ctx, userID, item.ID).Return(true, nil)

		_, err := service.Submit(ctx, userID, SubmitReviewRequest{
			ProductItemID: item.ID,
			Content:       "second attempt",
			Rating:        3,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("maps a lost constraint race to the duplicate error", func(t *testing.T) {
		service, mocks := newReviewService()
		item := testItem(t)

		mocks.items.On("FindByID", ctx, item.ID).Return(item, nil)
		mocks.orders.On("HasCompletedPurchase", ctx, userID, item.ID).Return(true, nil)
		mocks.reviews.On("ExistsForUserAndItem", ctx, userID, item.ID).Return(false, nil)
		mocks.reviews.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := service.Submit(ctx, userID, SubmitReviewRequest{
			ProductItemID: item.ID,
			Content:       "racing submission",
			Rating:        4,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("stores the uploaded image under the comments prefix", func(t *testing.T) {
		service, mocks := newReviewService()
		item := testItem(t)

		mocks.items.On("FindByID", ctx, item.ID).Return(item, nil)
		mocks.orders.On("HasCompletedPurchase", ctx, userID, item.ID).Return(true, nil)
		mocks.reviews.On("ExistsForUserAndItem", ctx, userID, item.ID).Return(false, nil)
		mocks.storage.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "uploads/comments/")
		}), "image/jpeg", mock.Anything).Return("uploads/comments/stored.jpg", nil)
		mocks.reviews.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := service.Submit(ctx, userID, SubmitReviewRequest{
			ProductItemID: item.ID,
			Content:       "with photo",
			Rating:        5,
			Image: &ImageUpload{
				Filename:    "photo.jpg",
				ContentType: "image/jpeg",
				Content:     strings.NewReader("jpeg bytes"),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "uploads/comments/stored.jpg", resp.Image)
		mocks.storage.AssertExpectations(t)
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("author deletes own review", func(t *testing.T) {
		service, mocks := newReviewService()

		r, err := review.NewReview(userID, uuid.New(), "good", 4, "")
		require.NoError(t, err)
		mocks.reviews.On("FindByID", ctx, r.ID).Return(r, nil)
		mocks.reviews.On("Delete", ctx, r.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, userID, r.ID))
		mocks.reviews.AssertExpectations(t)
	})

	t.Run("someone else's review is forbidden", func(t *testing.T) {
		service, mocks := newReviewService()

		r, err := review.NewReview(uuid.New(), uuid.New(), "good", 4, "")
		require.NoError(t, err)
		mocks.reviews.On("FindByID", ctx, r.ID).Return(r, nil)

		err = service.Delete(ctx, userID, r.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		mocks.reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
