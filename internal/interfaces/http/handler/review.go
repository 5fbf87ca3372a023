package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reviewapp "github.com/storefront/backend/internal/application/review"
)

// ReviewHandler handles review-related API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *reviewapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Submit godoc
// @Summary  Review a purchased SKU, once per user and SKU
// @Tags     reviews
// @Accept   mpfd
// @Success  201 {object} dto.Response{data=reviewapp.ReviewResponse}
// @Security BearerAuth
// @Router   /shop/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req reviewapp.SubmitReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			h.BadRequest(c, "Invalid image upload")
			return
		}
		defer f.Close()
		req.Image = &reviewapp.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		}
	} else if err != http.ErrMissingFile {
		h.BadRequest(c, "Invalid image upload")
		return
	}

	created, err := h.reviewService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// Delete godoc
// @Summary  Delete one of your own reviews
// @Tags     reviews
// @Success  204
// @Security BearerAuth
// @Router   /shop/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, reviewID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListByProduct godoc
// @Summary  List all reviews across a product's SKUs
// @Tags     reviews
// @Success  200 {object} dto.Response{data=[]reviewapp.ReviewResponse}
// @Router   /shop/products/{id}/reviews [get]
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// ListMine godoc
// @Summary  List your own reviews
// @Tags     reviews
// @Success  200 {object} dto.Response{data=[]reviewapp.ReviewResponse}
// @Security BearerAuth
// @Router   /shop/reviews/mine [get]
func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviews, err := h.reviewService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}
