package ports

import (
	"context"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
)

// StockAdjustment describes one inventory-affecting status change.
type StockAdjustment struct {
	OrderID kernel.UUID
	From    order.Status
	To      order.Status

	// ReturnLines is set only when To is returned; it carries per-line
	// quantities and return conditions for restock-vs-scrap disposition.
	ReturnLines []order.ReturnLine

	// IdempotencyKey is minted per logical operation by the caller so the
	// ledger can de-duplicate network retries.
	IdempotencyKey string
}

// LedgerClient is the contract with the external inventory ledger service.
// The ledger owns all stock arithmetic; adjustments apply atomically with no
// partial-application visibility. Errors come back verbatim and are never
// retried inside this core: after a timeout the effect is unknown.
type LedgerClient interface {
	// ReleaseReservation releases the checkout reservation for an order.
	ReleaseReservation(ctx context.Context, orderID kernel.UUID, idempotencyKey string) error

	// AdjustForStatusChange applies the inventory consequence of a status
	// change in a single atomic ledger operation.
	AdjustForStatusChange(ctx context.Context, adjustment StockAdjustment) error
}
