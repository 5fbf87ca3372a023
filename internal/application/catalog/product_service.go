package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
)

const (
	// ProductImagePrefix is the storage prefix for product images
	ProductImagePrefix = "images"

	// AdminPageSize is the page size of the admin product listing
	AdminPageSize = 10

	// ShopPageSize is the page size of the storefront listing
	ShopPageSize = 15
)

// Metrics receives counters emitted by the catalog services. A nil
// Metrics disables emission.
type Metrics interface {
	RecordProductCreated(ctx context.Context)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ObjectStorage
	metrics      Metrics
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ObjectStorage,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

// SetMetrics injects the telemetry sink after construction
func (s *ProductService) SetMetrics(m Metrics) {
	s.metrics = m
}

// Create creates a new product together with the SKUs expanded from its
// variant groups. The product and all of its SKUs are persisted in one
// transaction.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.categoryRepo.Exists(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	}

	groups, err := catalog.ParseVariantGroups(req.Variants)
	if err != nil {
		return nil, err
	}

	status := catalog.ProductStatus(req.Status)
	if req.Status == "" {
		status = catalog.ProductStatusActive
	}

	product, err := catalog.NewProduct(req.CategoryID, req.Title, req.Name, status, req.Description, req.Price, req.PriceSale)
	if err != nil {
		return nil, err
	}

	items, err := catalog.ExpandVariants(product.ID, groups)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	product.TotalQuantity = total

	if req.Image != nil {
		path, err := s.storeImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		product.SetPrimaryImage(path)
	}
	if len(req.DescriptionImages) > 0 {
		paths, err := s.storeImages(ctx, req.DescriptionImages)
		if err != nil {
			return nil, err
		}
		if err := product.AppendDescriptionImages(paths); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.CreateWithItems(ctx, product, items); err != nil {
		return nil, err
	}
	logger.DrainDomainEvents(ctx, product)

	created, err := s.productRepo.FindByIDWithItems(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordProductCreated(ctx)
	}

	response := ToProductResponse(created)
	return &response, nil
}

// GetByID retrieves a live product with its SKUs
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDWithItems(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves the admin product listing, newest first
func (s *ProductService) List(ctx context.Context, page int) (*shared.Paginated[ProductListResponse], error) {
	if page <= 0 {
		page = 1
	}
	filter := shared.DefaultFilter()
	filter.Page = page
	filter.PageSize = AdminPageSize

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductListResponses(products), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListShop retrieves the storefront listing with optional category and
// price bracket filters. Bracket bounds are applied to the sale price,
// inclusive on both ends.
func (s *ProductService) ListShop(ctx context.Context, shopFilter ShopListFilter) (*shared.Paginated[ProductListResponse], error) {
	filter := shared.DefaultFilter()
	filter.PageSize = ShopPageSize
	if shopFilter.Page > 0 {
		filter.Page = shopFilter.Page
	}
	if shopFilter.CategoryID != nil {
		filter.Filters["category_id"] = *shopFilter.CategoryID
	}
	if shopFilter.PriceBracket != "" {
		bracket := catalog.PriceBracket(shopFilter.PriceBracket)
		if !bracket.IsValid() {
			return nil, shared.NewDomainError("INVALID_PRICE_BRACKET", fmt.Sprintf("Unknown price bracket: %s", shopFilter.PriceBracket))
		}
		filter.Filters["price_bracket"] = bracket
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductListResponses(products), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByCategory returns all live products of a category. An empty result
// is reported as not found so callers can render a dedicated empty page.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductListResponse, error) {
	products, err := s.productRepo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No products in this category")
	}
	return ToProductListResponses(products), nil
}

// ListAll returns every live product without pagination
func (s *ProductService) ListAll(ctx context.Context) ([]ProductListResponse, error) {
	products, err := s.productRepo.FindAllUnpaged(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductListResponses(products), nil
}

// Count counts live products
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx, shared.DefaultFilter())
}

// Update applies a partial update to a product. A new primary image
// replaces the old one; new description images are appended after the
// existing paths.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Name != nil || req.Description != nil {
		title := product.Title
		name := product.Name
		description := product.Description
		if req.Title != nil {
			title = *req.Title
		}
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(title, name, description); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		product.SetCategory(*req.CategoryID)
	}

	if req.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.PriceSale != nil {
		price := product.Price
		priceSale := product.PriceSale
		if req.Price != nil {
			price = *req.Price
		}
		if req.PriceSale != nil {
			priceSale = *req.PriceSale
		}
		if err := product.SetPrices(price, priceSale); err != nil {
			return nil, err
		}
	}

	if req.Image != nil {
		path, err := s.storeImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		product.SetPrimaryImage(path)
	}
	if len(req.DescriptionImages) > 0 {
		paths, err := s.storeImages(ctx, req.DescriptionImages)
		if err != nil {
			return nil, err
		}
		if err := product.AppendDescriptionImages(paths); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	logger.DrainDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// SoftDelete hides a product from all catalog queries without removing it
func (s *ProductService) SoftDelete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.SoftDelete(); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	logger.DrainDomainEvents(ctx, product)
	return nil
}

// Restore brings a soft-deleted product back into the catalog
func (s *ProductService) Restore(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDIncludingDeleted(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.Restore(); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	logger.DrainDomainEvents(ctx, product)
	return nil
}

// Purge permanently removes a product and its SKUs. Only soft-deleted
// products may be purged.
func (s *ProductService) Purge(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDIncludingDeleted(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsDeleted() {
		return shared.ErrNotDeleted
	}
	return s.productRepo.Purge(ctx, productID)
}

// ListDeleted returns the soft-deleted products awaiting restore or purge
func (s *ProductService) ListDeleted(ctx context.Context) ([]ProductListResponse, error) {
	products, err := s.productRepo.FindDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductListResponses(products), nil
}

func (s *ProductService) storeImage(ctx context.Context, upload ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	key := fmt.Sprintf("%s/%s%s", ProductImagePrefix, uuid.New().String(), ext)
	path, err := s.storage.Put(ctx, key, upload.ContentType, upload.Content)
	if err != nil {
		return "", fmt.Errorf("store product image: %w", err)
	}
	return path, nil
}

func (s *ProductService) storeImages(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		path, err := s.storeImage(ctx, upload)
		if err != nil {
			// best effort rollback of the ones already written
			for _, stored := range paths {
				_ = s.storage.Delete(ctx, stored)
			}
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
