package commands

import (
	"errors"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/guard"
)

// ErrBookCourierCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrBookCourierCommandIsNotConstructed = errors.New(
	"BookCourierCommand must be created via NewBookCourierCommand constructor",
)

// BookCourierCommand requests a courier booking for one order.
type BookCourierCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBookCourierCommand creates a validated booking command.
func NewBookCourierCommand(orderID kernel.UUID) (BookCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return BookCourierCommand{}, err
	}

	return BookCourierCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BookCourierCommand) Validate() error {
	return c.guard.Validate(ErrBookCourierCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c BookCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}
