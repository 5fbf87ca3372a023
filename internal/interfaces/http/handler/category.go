package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create godoc
// @Summary  Create a category
// @Tags     admin-categories
// @Accept   json
// @Success  201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Security BearerAuth
// @Router   /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// Get godoc
// @Summary  Get a category by ID
// @Tags     categories
// @Success  200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Router   /shop/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// List godoc
// @Summary  List categories with pagination
// @Tags     categories
// @Success  200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router   /shop/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.categoryService.List(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.CurrentPage, result.PerPage)
}

// Update godoc
// @Summary  Rename a category
// @Tags     admin-categories
// @Accept   json
// @Success  200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Security BearerAuth
// @Router   /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}
