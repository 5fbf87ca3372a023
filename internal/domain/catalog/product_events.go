package catalog

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventProductCreated  = "catalog.product.created"
	EventProductUpdated  = "catalog.product.updated"
	EventProductDeleted  = "catalog.product.deleted"
	EventProductRestored = "catalog.product.restored"
)

// ProductCreatedEvent is raised when a new product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductCreated, p.ID, "Product"),
		Title:           p.Title,
		Name:            p.Name,
		Price:           p.Price,
	}
}

// ProductUpdatedEvent is raised when product fields change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductUpdated, p.ID, "Product"),
		Name:            p.Name,
	}
}

// ProductDeletedEvent is raised when a product is soft-deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(p *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductDeleted, p.ID, "Product"),
	}
}

// ProductRestoredEvent is raised when a soft-deleted product is restored
type ProductRestoredEvent struct {
	shared.BaseDomainEvent
}

// NewProductRestoredEvent creates a new ProductRestoredEvent
func NewProductRestoredEvent(p *Product) *ProductRestoredEvent {
	return &ProductRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductRestored, p.ID, "Product"),
	}
}
