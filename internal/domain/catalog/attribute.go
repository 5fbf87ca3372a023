package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Size is a reference entity for product variants (e.g. "S", "M", "XL")
type Size struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Size) TableName() string {
	return "sizes"
}

// Color is a reference entity for product variants (e.g. "black", "navy")
type Color struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Code      string    `gorm:"type:varchar(20)"` // optional hex code for display
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Color) TableName() string {
	return "colors"
}
