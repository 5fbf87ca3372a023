package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderRepository defines the read contract of the purchase ledger.
// Orders are written by the external fulfilment process; Save exists for
// that writer and for test fixtures.
type OrderRepository interface {
	// FindByID finds an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser returns all orders of a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindCompletedBetween returns completed orders created in the
	// half-open interval [start, end), with lines loaded
	FindCompletedBetween(ctx context.Context, start, end time.Time) ([]Order, error)

	// HasCompletedPurchase reports whether a completed order of the given
	// user contains the given SKU. The same SKU may appear in several
	// orders; any single completed occurrence is enough.
	HasCompletedPurchase(ctx context.Context, userID, productItemID uuid.UUID) (bool, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *Order) error
}
