package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderLine is a single SKU position of an order. The total price is
// always recomputed from quantity and unit price, never taken from input.
type OrderLine struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int       `gorm:"not null"`
	Price         int64     `gorm:"not null"` // unit price at order time, minor currency unit
	TotalPrice    int64     `gorm:"not null"` // Quantity * Price
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates a new order line with the total recomputed
func NewOrderLine(orderID, productItemID uuid.UUID, quantity int, unitPrice int64) (*OrderLine, error) {
	if productItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product item ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice < 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderLine{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductItemID: productItemID,
		Quantity:      quantity,
		Price:         unitPrice,
		TotalPrice:    int64(quantity) * unitPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
