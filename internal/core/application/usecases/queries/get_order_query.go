// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection-style rows
// straight from the database.
package queries

import (
	"errors"
	"time"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines and derived totals.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID)
//	handler := NewGetOrderQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s, total %d\n", view.ID, view.Status, view.Total)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full read model of one order.
// Totals are derived from the line rows at read time, never stored.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	Status      string
	EditVersion int

	CourierType    string
	TrackingNumber *string
	BookedAt       *time.Time

	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	City            string
	Notes           string

	ShippingAmount int64
	DiscountTotal  int64
	PromoName      string

	Lines []OrderLineResponse

	Subtotal int64
	Total    int64
}

// OrderLineResponse is one line of the order read model.
type OrderLineResponse struct {
	ID              kernel.UUID
	VariantID       kernel.UUID
	Qty             int
	UnitPrice       int64
	LineTotal       int64
	ReturnCondition string
}
