package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Metric attribute keys for shop metrics
const (
	AttrProductID    = attribute.Key("product_id")
	AttrPriceBracket = attribute.Key("price_bracket")
	AttrRejectReason = attribute.Key("reject_reason")
	AttrCacheResult  = attribute.Key("cache_result")
)

// ShopMetrics tracks storefront activity: catalog writes, product searches,
// review gating outcomes and ranking cache effectiveness.
type ShopMetrics struct {
	logger *zap.Logger

	productCreatedTotal  *Counter
	productSearchTotal   *Counter
	reviewSubmittedTotal *Counter
	reviewRejectedTotal  *Counter
	rankingCacheTotal    *Counter
}

// NewShopMetrics creates shop metrics on the given provider.
func NewShopMetrics(mp *MeterProvider, logger *zap.Logger) (*ShopMetrics, error) {
	meter := mp.Meter("storefront-backend/shop")

	productCreated, err := NewCounter(meter,
		"shop.product.created.total",
		"Total number of products created",
		"{product}")
	if err != nil {
		return nil, err
	}

	productSearch, err := NewCounter(meter,
		"shop.product.search.total",
		"Total number of recorded product searches",
		"{search}")
	if err != nil {
		return nil, err
	}

	reviewSubmitted, err := NewCounter(meter,
		"shop.review.submitted.total",
		"Total number of accepted reviews",
		"{review}")
	if err != nil {
		return nil, err
	}

	reviewRejected, err := NewCounter(meter,
		"shop.review.rejected.total",
		"Total number of reviews rejected by purchase gating",
		"{review}")
	if err != nil {
		return nil, err
	}

	rankingCache, err := NewCounter(meter,
		"shop.ranking.cache.total",
		"Top-selling ranking cache lookups by result",
		"{lookup}")
	if err != nil {
		return nil, err
	}

	return &ShopMetrics{
		logger:               logger,
		productCreatedTotal:  productCreated,
		productSearchTotal:   productSearch,
		reviewSubmittedTotal: reviewSubmitted,
		reviewRejectedTotal:  reviewRejected,
		rankingCacheTotal:    rankingCache,
	}, nil
}

// RecordProductCreated counts a successful product creation
func (m *ShopMetrics) RecordProductCreated(ctx context.Context) {
	m.productCreatedTotal.Inc(ctx)
}

// RecordProductSearch counts a recorded search against a product
func (m *ShopMetrics) RecordProductSearch(ctx context.Context, productID uuid.UUID) {
	m.productSearchTotal.Inc(ctx, AttrProductID.String(productID.String()))
}

// RecordReviewSubmitted counts an accepted review
func (m *ShopMetrics) RecordReviewSubmitted(ctx context.Context) {
	m.reviewSubmittedTotal.Inc(ctx)
}

// RecordReviewRejected counts a review turned away, labelled by reason
// ("not_purchased", "duplicate", ...)
func (m *ShopMetrics) RecordReviewRejected(ctx context.Context, reason string) {
	m.reviewRejectedTotal.Inc(ctx, AttrRejectReason.String(reason))
}

// RecordRankingCacheHit counts a ranking served from cache
func (m *ShopMetrics) RecordRankingCacheHit(ctx context.Context) {
	m.rankingCacheTotal.Inc(ctx, AttrCacheResult.String("hit"))
}

// RecordRankingCacheMiss counts a ranking recomputed from the ledger
func (m *ShopMetrics) RecordRankingCacheMiss(ctx context.Context) {
	m.rankingCacheTotal.Inc(ctx, AttrCacheResult.String("miss"))
}
