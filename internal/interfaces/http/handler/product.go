package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// openUpload opens one multipart file as an application-layer image upload.
// The returned closer must be closed after the service call finishes.
func openUpload(fh *multipart.FileHeader) (catalogapp.ImageUpload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return catalogapp.ImageUpload{}, nil, err
	}
	return catalogapp.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, f, nil
}

// collectUploads extracts the primary image and the description images from
// the multipart form, if any were sent
func collectUploads(c *gin.Context) (*catalogapp.ImageUpload, []catalogapp.ImageUpload, []io.Closer, error) {
	var closers []io.Closer

	var primary *catalogapp.ImageUpload
	if fh, err := c.FormFile("image"); err == nil {
		upload, closer, err := openUpload(fh)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, closer)
		primary = &upload
	} else if err != http.ErrMissingFile {
		return nil, nil, closers, err
	}

	var descriptions []catalogapp.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["image_description"] {
			upload, closer, err := openUpload(fh)
			if err != nil {
				return primary, descriptions, closers, err
			}
			closers = append(closers, closer)
			descriptions = append(descriptions, upload)
		}
	}

	return primary, descriptions, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, closer := range closers {
		closer.Close()
	}
}

// Create godoc
// @Summary  Create a product with its variant SKUs
// @Tags     admin-products
// @Accept   mpfd
// @Success  201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Security BearerAuth
// @Router   /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	primary, descriptions, closers, err := collectUploads(c)
	defer closeAll(closers)
	if err != nil {
		h.BadRequest(c, "Invalid image upload")
		return
	}
	req.Image = primary
	req.DescriptionImages = descriptions

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Get godoc
// @Summary  Get a product with its SKUs
// @Tags     products
// @Success  200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Router   /shop/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
// @Summary  List live products for the admin panel
// @Tags     admin-products
// @Success  200 {object} dto.Response{data=[]catalogapp.ProductListResponse}
// @Security BearerAuth
// @Router   /admin/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.productService.List(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.CurrentPage, result.PerPage)
}

// Count godoc
// @Summary  Count live products
// @Tags     admin-products
// @Success  200 {object} dto.Response
// @Security BearerAuth
// @Router   /admin/products/count [get]
func (h *ProductHandler) Count(c *gin.Context) {
	count, err := h.productService.Count(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

// ListShop godoc
// @Summary  List storefront products, filterable by category and price bracket
// @Tags     products
// @Success  200 {object} dto.Response{data=[]catalogapp.ProductListResponse}
// @Router   /shop/products [get]
func (h *ProductHandler) ListShop(c *gin.Context) {
	var filter catalogapp.ShopListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.ListShop(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.CurrentPage, result.PerPage)
}

// ListByCategory godoc
// @Summary  List all live products of a category
// @Tags     products
// @Success  200 {object} dto.Response{data=[]catalogapp.ProductListResponse}
// @Router   /shop/categories/{id}/products [get]
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	products, err := h.productService.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// ListAll godoc
// @Summary  List every live product without pagination
// @Tags     products
// @Success  200 {object} dto.Response{data=[]catalogapp.ProductListResponse}
// @Router   /shop/products/all [get]
func (h *ProductHandler) ListAll(c *gin.Context) {
	products, err := h.productService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Update godoc
// @Summary  Partially update a product, appending any uploaded description images
// @Tags     admin-products
// @Accept   mpfd
// @Success  200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Security BearerAuth
// @Router   /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	primary, descriptions, closers, err := collectUploads(c)
	defer closeAll(closers)
	if err != nil {
		h.BadRequest(c, "Invalid image upload")
		return
	}
	req.Image = primary
	req.DescriptionImages = descriptions

	product, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete godoc
// @Summary  Soft-delete a product so it disappears from the storefront
// @Tags     admin-products
// @Success  204
// @Security BearerAuth
// @Router   /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.SoftDelete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore godoc
// @Summary  Restore a soft-deleted product
// @Tags     admin-products
// @Success  204
// @Security BearerAuth
// @Router   /admin/products/{id}/restore [post]
func (h *ProductHandler) Restore(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Restore(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Purge godoc
// @Summary  Permanently remove a product and its SKUs
// @Tags     admin-products
// @Success  204
// @Security BearerAuth
// @Router   /admin/products/{id}/purge [delete]
func (h *ProductHandler) Purge(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Purge(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListDeleted godoc
// @Summary  List soft-deleted products awaiting restore or purge
// @Tags     admin-products
// @Success  200 {object} dto.Response{data=[]catalogapp.ProductListResponse}
// @Security BearerAuth
// @Router   /admin/products/deleted [get]
func (h *ProductHandler) ListDeleted(c *gin.Context) {
	products, err := h.productService.ListDeleted(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}
