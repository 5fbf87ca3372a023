package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// DrainDomainEvents logs the events recorded on an aggregate and clears
// them. The log stream is the only subscriber; there is no event bus.
// Call it after the aggregate has been persisted successfully.
func DrainDomainEvents(ctx context.Context, agg shared.AggregateRoot) {
	for _, ev := range agg.GetDomainEvents() {
		L(ctx).Info("domain event",
			zap.String("event_type", ev.EventType()),
			zap.String("aggregate_type", ev.AggregateType()),
			zap.String("aggregate_id", ev.AggregateID().String()),
			zap.Time("occurred_at", ev.OccurredAt()),
		)
	}
	agg.ClearDomainEvents()
}
