package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsapp "github.com/storefront/backend/internal/application/analytics"
	"github.com/storefront/backend/internal/domain/analytics"
	"github.com/storefront/backend/tests/testutil"
)

func TestTopSellingRanking(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	srv := newTestServer(t, tdb)

	bestsellerID, bestsellerItem := tdb.SeedVariantFixture("bestseller")
	runnerUpID, runnerUpItem := tdb.SeedVariantFixture("runner-up")

	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	buyer := uuid.New()

	// Three units of the bestseller and one of the runner-up, completed in March
	first := uuid.New()
	tdb.CreateTestOrder(first, buyer, "completed", 480000, march)
	tdb.CreateTestOrderLine(uuid.New(), first, bestsellerItem, 3, 120000)
	tdb.CreateTestOrderLine(uuid.New(), first, runnerUpItem, 1, 120000)

	// Pending orders never count
	pending := uuid.New()
	tdb.CreateTestOrder(pending, buyer, "pending", 1200000, march)
	tdb.CreateTestOrderLine(uuid.New(), pending, runnerUpItem, 10, 120000)

	// Orders outside the month never count
	april := uuid.New()
	tdb.CreateTestOrder(april, buyer, "completed", 120000, march.AddDate(0, 1, 0))
	tdb.CreateTestOrderLine(uuid.New(), april, runnerUpItem, 1, 120000)

	w := testutil.PerformRequest(t, srv.Engine, http.MethodGet, "/api/v1/shop/stats/top-selling?year=2026&month=3", nil, nil)
	var stats []analytics.ProductSalesStat
	testutil.AssertSuccess(t, w, http.StatusOK, &stats)
	require.Len(t, stats, 2)

	assert.Equal(t, bestsellerID, stats[0].ProductID)
	assert.Equal(t, int64(3), stats[0].Quantity)
	assert.True(t, stats[0].TotalRevenue.Equal(decimal.NewFromInt(360000)))

	assert.Equal(t, runnerUpID, stats[1].ProductID)
	assert.Equal(t, int64(1), stats[1].Quantity)

	// Month is validated before touching the ledger
	w = testutil.PerformRequest(t, srv.Engine, http.MethodGet, "/api/v1/shop/stats/top-selling?year=2026&month=13", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchPopularity(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	srv := newTestServer(t, tdb)

	now := time.Now()
	thisMonth := fmt.Sprintf("/api/v1/shop/stats/top-searched?year=%d&month=%d", now.Year(), int(now.Month()))

	// Nothing searched yet this month
	w := testutil.PerformRequest(t, srv.Engine, http.MethodGet, thisMonth, nil, nil)
	testutil.AssertError(t, w, http.StatusNotFound, "ERR_NOT_FOUND")

	popularID, _ := tdb.SeedVariantFixture("popular")
	nicheID, _ := tdb.SeedVariantFixture("niche")

	for i := 0; i < 2; i++ {
		w = testutil.PerformRequest(t, srv.Engine, http.MethodPost, "/api/v1/shop/products/"+popularID.String()+"/search", nil, nil)
		testutil.AssertSuccess(t, w, http.StatusOK, nil)
	}
	w = testutil.PerformRequest(t, srv.Engine, http.MethodPost, "/api/v1/shop/products/"+nicheID.String()+"/search", nil, nil)
	testutil.AssertSuccess(t, w, http.StatusOK, nil)

	w = testutil.PerformRequest(t, srv.Engine, http.MethodGet, thisMonth, nil, nil)
	var stats []analyticsapp.ProductSearchStat
	testutil.AssertSuccess(t, w, http.StatusOK, &stats)
	require.Len(t, stats, 2)

	assert.Equal(t, popularID, stats[0].ProductID)
	assert.Equal(t, int64(2), stats[0].SearchCount)
	assert.Equal(t, nicheID, stats[1].ProductID)
	assert.Equal(t, int64(1), stats[1].SearchCount)

	// A month nobody searched in stays empty
	w = testutil.PerformRequest(t, srv.Engine, http.MethodGet, "/api/v1/shop/stats/top-searched?year=2020&month=1", nil, nil)
	testutil.AssertError(t, w, http.StatusNotFound, "ERR_NOT_FOUND")

	// Month params are required
	w = testutil.PerformRequest(t, srv.Engine, http.MethodGet, "/api/v1/shop/stats/top-searched", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Searching an unknown product is a 404, not a silent counter
	w = testutil.PerformRequest(t, srv.Engine, http.MethodPost, "/api/v1/shop/products/"+uuid.New().String()+"/search", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
