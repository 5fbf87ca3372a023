package catalog

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Category groups products for browsing and filtering
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 200 characters")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
