package ports

import (
	"context"

	"afalstore/internal/core/domain/model/order"
)

// EditRecordRepository is the append-only store for order edit audit records.
// Records are never updated or deleted.
type EditRecordRepository interface {
	// Add appends an edit record.
	Add(ctx context.Context, record *order.EditRecord) error
}
