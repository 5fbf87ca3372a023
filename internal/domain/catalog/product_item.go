package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductItem is a concrete purchasable unit (SKU) identified by
// product + size + color. Items are created only as a byproduct of
// product creation, never independently by a client.
type ProductItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_product_size_color,priority:1"`
	SizeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_product_size_color,priority:2"`
	ColorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_product_size_color,priority:3"`
	Quantity  int       `gorm:"not null;default:0"`
	Type      string    `gorm:"type:varchar(50)"`
	Size      *Size     `gorm:"foreignKey:SizeID"`
	Color     *Color    `gorm:"foreignKey:ColorID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ProductItem) TableName() string {
	return "product_items"
}

// NewProductItem creates a new SKU for a product
func NewProductItem(productID, sizeID, colorID uuid.UUID, quantity int, typeTag string) (*ProductItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if sizeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size ID cannot be empty")
	}
	if colorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	now := time.Now()
	return &ProductItem{
		ID:        uuid.New(),
		ProductID: productID,
		SizeID:    sizeID,
		ColorID:   colorID,
		Quantity:  quantity,
		Type:      typeTag,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
