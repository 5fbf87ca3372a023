package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product is the aggregate root of the catalog.
// Prices are stored in the currency's minor unit (VND) as integers.
type Product struct {
	shared.BaseAggregateRoot
	CategoryID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	Title            string        `gorm:"type:varchar(255);not null"`
	Name             string        `gorm:"type:varchar(500);not null"`
	Status           ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Description      string        `gorm:"type:text"`
	Price            int64         `gorm:"not null;default:0"`
	PriceSale        int64         `gorm:"not null;default:0"`
	TotalQuantity    int           `gorm:"not null;default:0"`
	ImageProduct     string        `gorm:"type:varchar(500)"`
	ImageDescription string        `gorm:"type:jsonb;default:'[]'"` // ordered list of stored image paths
	SearchCount      int64         `gorm:"not null;default:0"`
	SearchCountDate  *time.Time    `gorm:"index"`
	DeletedAt        *time.Time    `gorm:"index"` // null = live, non-null = soft-deleted
	Items            []ProductItem `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(categoryID uuid.UUID, title, name string, status ProductStatus, description string, price, priceSale int64) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
	}
	if err := validatePrices(price, priceSale); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CategoryID:        categoryID,
		Title:             title,
		Name:              name,
		Status:            status,
		Description:       description,
		Price:             price,
		PriceSale:         priceSale,
		ImageDescription:  "[]",
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(title, name, description string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	p.Title = title
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStatus changes the product status
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetPrices sets the base and sale price.
// The sale price may never exceed the base price.
func (p *Product) SetPrices(price, priceSale int64) error {
	if err := validatePrices(price, priceSale); err != nil {
		return err
	}
	p.Price = price
	p.PriceSale = priceSale
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetPrimaryImage sets the stored path of the primary product image
func (p *Product) SetPrimaryImage(path string) {
	p.ImageProduct = path
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// DescriptionImages returns the ordered list of description image paths
func (p *Product) DescriptionImages() []string {
	if p.ImageDescription == "" {
		return nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(p.ImageDescription), &paths); err != nil {
		return nil
	}
	return paths
}

// AppendDescriptionImages appends stored paths to the description image list,
// keeping any previously stored paths.
func (p *Product) AppendDescriptionImages(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	merged := append(p.DescriptionImages(), paths...)
	encoded, err := json.Marshal(merged)
	if err != nil {
		return shared.NewDomainError("INVALID_IMAGES", "Description images could not be encoded")
	}
	p.ImageDescription = string(encoded)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SoftDelete marks the product as deleted without removing it
func (p *Product) SoftDelete() error {
	if p.IsDeleted() {
		return shared.ErrAlreadyDeleted
	}
	now := time.Now()
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDeletedEvent(p))

	return nil
}

// Restore brings a soft-deleted product back to the live catalog
func (p *Product) Restore() error {
	if !p.IsDeleted() {
		return shared.ErrNotDeleted
	}
	p.DeletedAt = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRestoredEvent(p))

	return nil
}

// IsDeleted returns true if the product is soft-deleted
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// IsActive returns true if the product is live and active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive && !p.IsDeleted()
}

func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 500 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 500 characters")
	}
	return nil
}

func validatePrices(price, priceSale int64) error {
	if price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if priceSale < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if priceSale > price {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be greater than the original price")
	}
	return nil
}
