package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductSearchStat represents a product in the search popularity ranking
type ProductSearchStat struct {
	ProductID    uuid.UUID  `json:"product_id"`
	Name         string     `json:"name"`
	ImageProduct string     `json:"image_product"`
	SearchCount  int64      `json:"search_count"`
	LastSearched *time.Time `json:"last_searched,omitempty"`
}

// ToProductSearchStat converts a domain Product to ProductSearchStat
func ToProductSearchStat(p *catalog.Product) ProductSearchStat {
	return ProductSearchStat{
		ProductID:    p.ID,
		Name:         p.Name,
		ImageProduct: p.ImageProduct,
		SearchCount:  p.SearchCount,
		LastSearched: p.SearchCountDate,
	}
}
