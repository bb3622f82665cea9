package queries

import (
	"errors"
	"time"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/guard"
)

var ErrGetOrderEditHistoryQueryIsNotConstructed = errors.New(
	"GetOrderEditHistoryQuery must be created via NewGetOrderEditHistoryQuery constructor",
)

// GetOrderEditHistoryQuery retrieves the append-only edit trail of one order,
// newest first.
type GetOrderEditHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderEditHistoryQuery creates a query for an order's edit history.
func NewGetOrderEditHistoryQuery(orderID kernel.UUID) (GetOrderEditHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderEditHistoryQuery{}, err
	}

	return GetOrderEditHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderEditHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEditHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderEditHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderEditHistoryQueryResponse is one row of the edit trail.
// Diff is the stored JSON document describing what changed.
type GetOrderEditHistoryQueryResponse struct {
	ID             kernel.UUID
	Reason         string
	Diff           string
	ActorTimeZone  string
	ActorUserAgent string
	CreatedAt      time.Time
}
