package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product.
// Variants holds the raw JSON payload of variant groups; each group's size
// and color sets are crossed into one SKU per combination.
type CreateProductRequest struct {
	CategoryID  uuid.UUID `form:"category_id" binding:"required"`
	Title       string    `form:"title" binding:"required,min=1,max=255"`
	Name        string    `form:"name" binding:"required,min=1,max=500"`
	Status      string    `form:"status" binding:"omitempty,oneof=active inactive"`
	Description string    `form:"description"`
	Price       int64     `form:"price" binding:"min=0"`
	PriceSale   int64     `form:"price_sale" binding:"min=0"`
	Variants    string    `form:"variants" binding:"required"`

	Image             *ImageUpload   `form:"-"`
	DescriptionImages []ImageUpload  `form:"-"`
}

// UpdateProductRequest represents a partial update of a product. Nil fields
// are left untouched; uploaded description images are appended to the
// existing list, never replacing it.
type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `form:"category_id"`
	Title       *string    `form:"title" binding:"omitempty,min=1,max=255"`
	Name        *string    `form:"name" binding:"omitempty,min=1,max=500"`
	Status      *string    `form:"status" binding:"omitempty,oneof=active inactive"`
	Description *string    `form:"description"`
	Price       *int64     `form:"price" binding:"omitempty,min=0"`
	PriceSale   *int64     `form:"price_sale" binding:"omitempty,min=0"`

	Image             *ImageUpload  `form:"-"`
	DescriptionImages []ImageUpload `form:"-"`
}

// ShopListFilter represents the storefront listing query
type ShopListFilter struct {
	CategoryID   *uuid.UUID `form:"category_id"`
	PriceBracket string     `form:"price" binding:"omitempty,oneof=1m-2m 2m-5m 5m-10m"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
}

// ProductItemResponse represents a SKU in API responses
type ProductItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SizeID    uuid.UUID `json:"size_id"`
	ColorID   uuid.UUID `json:"color_id"`
	SizeName  string    `json:"size_name,omitempty"`
	ColorName string    `json:"color_name,omitempty"`
	Quantity  int       `json:"quantity"`
	Type      string    `json:"type,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID             `json:"id"`
	CategoryID       uuid.UUID             `json:"category_id"`
	Title            string                `json:"title"`
	Name             string                `json:"name"`
	Status           string                `json:"status"`
	Description      string                `json:"description"`
	Price            int64                 `json:"price"`
	PriceSale        int64                 `json:"price_sale"`
	TotalQuantity    int                   `json:"total_quantity"`
	ImageProduct     string                `json:"image_product"`
	DescriptionImages []string             `json:"image_description"`
	SearchCount      int64                 `json:"search_count"`
	DeletedAt        *time.Time            `json:"deleted_at,omitempty"`
	Items            []ProductItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   uuid.UUID `json:"category_id"`
	Title        string    `json:"title"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Price        int64     `json:"price"`
	PriceSale    int64     `json:"price_sale"`
	ImageProduct string    `json:"image_product"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductItemResponse converts a domain ProductItem to ProductItemResponse
func ToProductItemResponse(item *catalog.ProductItem) ProductItemResponse {
	resp := ProductItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		SizeID:    item.SizeID,
		ColorID:   item.ColorID,
		Quantity:  item.Quantity,
		Type:      item.Type,
	}
	if item.Size != nil {
		resp.SizeName = item.Size.Name
	}
	if item.Color != nil {
		resp.ColorName = item.Color.Name
	}
	return resp
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	items := make([]ProductItemResponse, len(p.Items))
	for i := range p.Items {
		items[i] = ToProductItemResponse(&p.Items[i])
	}
	return ProductResponse{
		ID:                p.ID,
		CategoryID:        p.CategoryID,
		Title:             p.Title,
		Name:              p.Name,
		Status:            string(p.Status),
		Description:       p.Description,
		Price:             p.Price,
		PriceSale:         p.PriceSale,
		TotalQuantity:     p.TotalQuantity,
		ImageProduct:      p.ImageProduct,
		DescriptionImages: p.DescriptionImages(),
		SearchCount:       p.SearchCount,
		DeletedAt:         p.DeletedAt,
		Items:             items,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Title:        p.Title,
		Name:         p.Name,
		Status:       string(p.Status),
		Price:        p.Price,
		PriceSale:    p.PriceSale,
		ImageProduct: p.ImageProduct,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductListResponses converts a slice of domain Products to ProductListResponses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
