package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the order lifecycle
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is the purchase ledger aggregate. Orders are written by the
// external fulfilment process; this core only reads them for purchase
// gating and sales aggregation.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	VoucherID       *uuid.UUID  `gorm:"type:uuid"`
	OrderNumber     string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	PaymentMethod   string      `gorm:"type:varchar(50)"`
	TotalAmount     int64       `gorm:"not null;default:0"`
	ShippingAddress string      `gorm:"type:varchar(500)"`
	BillingAddress  string      `gorm:"type:varchar(500)"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	NoteUser        string      `gorm:"type:text"`
	NoteAdmin       string      `gorm:"type:text"`
	CheckRefund     bool        `gorm:"not null;default:false"`
	Lines           []OrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in the pending state
func NewOrder(userID uuid.UUID, orderNumber, paymentMethod, shippingAddress, billingAddress string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OrderNumber:       orderNumber,
		PaymentMethod:     paymentMethod,
		ShippingAddress:   shippingAddress,
		BillingAddress:    billingAddress,
		Status:            OrderStatusPending,
	}, nil
}

// AddLine appends a line to the order and keeps the total in sync
func (o *Order) AddLine(line *OrderLine) error {
	if o.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	line.OrderID = o.ID
	o.Lines = append(o.Lines, *line)
	o.TotalAmount += line.TotalPrice
	o.UpdatedAt = time.Now()
	return nil
}

// SetStatus moves the order to a new status.
// A terminal order can no longer change status.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// IsCompleted reports whether the order counts for purchase gating
// and sales aggregation
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
