package analytics

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
)

// ProductSalesStat is a read model aggregating completed order lines per
// product for one calendar month.
type ProductSalesStat struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Quantity     int64           `json:"quantity"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
}

// ProductRef is the product projection the aggregator needs: identity plus
// the display fields carried into the ranking.
type ProductRef struct {
	ID    uuid.UUID
	Name  string
	Image string
}

// ProductResolver maps a SKU to its owning product. The boolean is false
// when the SKU or its product no longer exists; such lines are skipped.
type ProductResolver func(productItemID uuid.UUID) (ProductRef, bool)

// AggregateSales walks the lines of the given completed orders and
// accumulates per-product quantity and revenue. Revenue uses each line's
// stored unit price, not the live product price. The result is sorted by
// quantity descending; ties break on product ID ascending so the ranking
// is deterministic.
func AggregateSales(orders []ordering.Order, resolve ProductResolver, year, month int) []ProductSalesStat {
	stats := make(map[uuid.UUID]*ProductSalesStat)

	for _, order := range orders {
		for _, line := range order.Lines {
			ref, ok := resolve(line.ProductItemID)
			if !ok {
				// SKU or product deleted since the order was placed;
				// treat the lookup miss as absence, not an error.
				continue
			}

			revenue := decimal.NewFromInt(int64(line.Quantity)).Mul(decimal.NewFromInt(line.Price))

			if stat, exists := stats[ref.ID]; exists {
				stat.Quantity += int64(line.Quantity)
				stat.TotalRevenue = stat.TotalRevenue.Add(revenue)
				continue
			}

			stats[ref.ID] = &ProductSalesStat{
				ProductID:    ref.ID,
				ProductName:  ref.Name,
				ProductImage: ref.Image,
				Quantity:     int64(line.Quantity),
				TotalRevenue: revenue,
				Month:        month,
				Year:         year,
			}
		}
	}

	ranked := make([]ProductSalesStat, 0, len(stats))
	for _, stat := range stats {
		ranked = append(ranked, *stat)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return strings.Compare(ranked[i].ProductID.String(), ranked[j].ProductID.String()) < 0
	})

	return ranked
}
