package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/storefront/backend/internal/application/analytics"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// StatsHandler handles sales ranking and search popularity endpoints
type StatsHandler struct {
	BaseHandler
	statsService *analyticsapp.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *analyticsapp.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// TopSelling godoc
// @Summary  Rank products by units sold in completed orders of a month
// @Tags     stats
// @Success  200 {object} dto.Response{data=[]analytics.ProductSalesStat}
// @Router   /shop/stats/top-selling [get]
func (h *StatsHandler) TopSelling(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	stats, err := h.statsService.TopSellingByMonth(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// TopSearched godoc
// @Summary  List the products searched in a month, most searched first
// @Tags     stats
// @Success  200 {object} dto.Response{data=[]analyticsapp.ProductSearchStat}
// @Router   /shop/stats/top-searched [get]
func (h *StatsHandler) TopSearched(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	stats, err := h.statsService.TopSearched(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// RecordSearch godoc
// @Summary  Count one search hit against a product
// @Tags     stats
// @Success  200 {object} dto.Response
// @Router   /shop/products/{id}/search [post]
func (h *StatsHandler) RecordSearch(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	count, err := h.statsService.RecordSearch(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"search_count": count})
}
