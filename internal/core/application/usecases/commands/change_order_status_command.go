package commands

import (
	"errors"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/pkg/guard"
)

// ErrChangeOrderStatusCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests one status transition for one order.
//
// The raw return-condition flags from the request are parsed at construction:
// unrecognized or omitted flags pass through as ConditionUnset, and flags
// keyed by something that is not a line UUID are dropped. They are consulted
// only when the target status is returned.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	target           order.Status
	returnConditions map[kernel.UUID]order.ReturnCondition

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated status change command.
// A target outside the closed status enum is rejected here, before any side
// effect is attempted.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	rawConditions map[string]string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.target = target
	cmd.returnConditions = parseReturnConditions(rawConditions)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// ReturnConditions returns the parsed per-line return conditions.
func (c ChangeOrderStatusCommand) ReturnConditions() map[kernel.UUID]order.ReturnCondition {
	return c.returnConditions
}

func parseReturnConditions(raw map[string]string) map[kernel.UUID]order.ReturnCondition {
	conditions := make(map[kernel.UUID]order.ReturnCondition, len(raw))
	for key, flag := range raw {
		lineID, err := kernel.UUIDFromString(key)
		if err != nil {
			continue
		}
		conditions[lineID] = order.ParseReturnCondition(flag)
	}
	return conditions
}
