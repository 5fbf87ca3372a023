package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"github.com/storefront/backend/internal/domain/analytics"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// TopSellingCache caches the per-month sales ranking. A miss is reported
// with found == false, never as an error.
type TopSellingCache interface {
	Get(ctx context.Context, year, month int) ([]analytics.ProductSalesStat, bool, error)
	Set(ctx context.Context, year, month int, stats []analytics.ProductSalesStat) error
}

// Metrics receives counters emitted by the stats service. Implemented by
// the telemetry layer; a nil Metrics disables emission.
type Metrics interface {
	RecordProductSearch(ctx context.Context, productID uuid.UUID)
	RecordRankingCacheHit(ctx context.Context)
	RecordRankingCacheMiss(ctx context.Context)
}

// StatsService computes sales rankings from the purchase ledger and tracks
// product search popularity.
type StatsService struct {
	orderRepo   ordering.OrderRepository
	itemRepo    catalog.ProductItemRepository
	productRepo catalog.ProductRepository
	cache       TopSellingCache
	metrics     Metrics
	logger      *zap.Logger
}

// NewStatsService creates a new StatsService. cache may be nil, in which
// case every ranking request recomputes from the ledger.
func NewStatsService(
	orderRepo ordering.OrderRepository,
	itemRepo catalog.ProductItemRepository,
	productRepo catalog.ProductRepository,
	cache TopSellingCache,
	logger *zap.Logger,
) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		cache:       cache,
		logger:      logger,
	}
}

// SetMetrics injects the telemetry sink after construction
func (s *StatsService) SetMetrics(m Metrics) {
	s.metrics = m
}

// TopSellingByMonth ranks products by units sold in completed orders
// created during the given calendar month. Revenue uses the unit price
// stored on each order line. SKUs whose product no longer resolves are
// skipped rather than failing the whole ranking.
func (s *StatsService) TopSellingByMonth(ctx context.Context, year, month int) ([]analytics.ProductSalesStat, error) {
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 1970 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}

	if s.cache != nil {
		stats, found, err := s.cache.Get(ctx, year, month)
		if err != nil {
			s.logger.Warn("top selling cache read failed",
				zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		} else if found {
			if s.metrics != nil {
				s.metrics.RecordRankingCacheHit(ctx)
			}
			return stats, nil
		}
		if s.metrics != nil {
			s.metrics.RecordRankingCacheMiss(ctx)
		}
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	orders, err := s.orderRepo.FindCompletedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := analytics.AggregateSales(orders, s.resolver(ctx), year, month)

	if s.cache != nil {
		if err := s.cache.Set(ctx, year, month, stats); err != nil {
			s.logger.Warn("top selling cache write failed",
				zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		}
	}
	return stats, nil
}

// RecordSearch atomically bumps a product's search counter and stamps the
// search date. Concurrent calls for the same product never lose updates.
func (s *StatsService) RecordSearch(ctx context.Context, productID uuid.UUID) (int64, error) {
	product, err := s.productRepo.IncrementSearchCount(ctx, productID)
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordProductSearch(ctx, productID)
	}
	return product.SearchCount, nil
}

// TopSearched returns the products searched during the given calendar
// month, most searched first. An empty month is reported as not found.
func (s *StatsService) TopSearched(ctx context.Context, year, month int) ([]ProductSearchStat, error) {
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 1970 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of range")
	}

	products, err := s.productRepo.FindSearchedInMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No products searched this month")
	}

	stats := make([]ProductSearchStat, len(products))
	for i := range products {
		stats[i] = ToProductSearchStat(&products[i])
	}
	return stats, nil
}

// resolver maps SKUs to live products, memoizing lookups for the duration
// of one aggregation pass.
func (s *StatsService) resolver(ctx context.Context) analytics.ProductResolver {
	items := make(map[uuid.UUID]*catalog.ProductItem)
	products := make(map[uuid.UUID]*catalog.Product)

	return func(productItemID uuid.UUID) (analytics.ProductRef, bool) {
		item, ok := items[productItemID]
		if !ok {
			found, err := s.itemRepo.FindByID(ctx, productItemID)
			if err != nil {
				items[productItemID] = nil
				return analytics.ProductRef{}, false
			}
			item = found
			items[productItemID] = item
		}
		if item == nil {
			return analytics.ProductRef{}, false
		}

		product, ok := products[item.ProductID]
		if !ok {
			found, err := s.productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				products[item.ProductID] = nil
				return analytics.ProductRef{}, false
			}
			product = found
			products[item.ProductID] = product
		}
		if product == nil {
			return analytics.ProductRef{}, false
		}

		return analytics.ProductRef{
			ID:    product.ID,
			Name:  product.Name,
			Image: product.ImageProduct,
		}, true
	}
}
