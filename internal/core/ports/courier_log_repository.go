package ports

import (
	"context"

	"afalstore/internal/core/domain/model/courier"
)

// CourierLogRepository is the append-only store for courier API audit entries.
//
// Entries are written outside the order's transaction on purpose: an entry
// documents an external call that really happened, so it must survive even
// when the surrounding order write rolls back.
type CourierLogRepository interface {
	// Add appends a courier API log entry.
	Add(ctx context.Context, entry *courier.LogEntry) error
}
