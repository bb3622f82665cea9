package commands

import (
	"errors"
	"fmt"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/pkg/errs"
	"afalstore/internal/pkg/guard"
)

// ErrSubmitOrderEditCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrSubmitOrderEditCommandIsNotConstructed = errors.New(
	"SubmitOrderEditCommand must be created via NewSubmitOrderEditCommand constructor",
)

// EditPatch carries the optional field and line changes of one edit.
// Nil members leave the current value untouched. A nil Lines slice means the
// line set is untouched; a non-nil slice is the complete desired line set.
type EditPatch struct {
	Contact        order.ContactPatch
	ShippingAmount *int64
	DiscountTotal  *int64
	PromoName      *string
	Lines          []order.LineSpec
}

// ActorContext captures who submitted the edit, for the audit trail.
type ActorContext struct {
	TimeZone  string
	UserAgent string
}

// SubmitOrderEditCommand requests one optimistic-concurrency edit of an order.
//
// Structural validation happens here, before any network or database call:
// a patch that would leave zero lines or references the same variant twice is
// rejected at construction, as is a reason shorter than three characters.
type SubmitOrderEditCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	expectedEditVersion int
	patch               EditPatch
	reason              string
	actor               ActorContext

	guard guard.ConstructorGuard
}

// NewSubmitOrderEditCommand creates a validated edit command.
func NewSubmitOrderEditCommand(
	orderID kernel.UUID,
	expectedEditVersion int,
	patch EditPatch,
	reason string,
	actor ActorContext,
) (SubmitOrderEditCommand, error) {
	cmd := SubmitOrderEditCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return SubmitOrderEditCommand{}, err
	}
	if expectedEditVersion < 1 {
		return SubmitOrderEditCommand{}, errs.NewValueIsInvalidErrorWithCause("expectedEditVersion",
			fmt.Errorf("%d is not at least 1", expectedEditVersion))
	}
	if len(reason) < order.MinReasonLength {
		return SubmitOrderEditCommand{}, errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("reason must be at least %d characters", order.MinReasonLength))
	}
	if err := validateLineSpecs(patch.Lines); err != nil {
		return SubmitOrderEditCommand{}, err
	}

	cmd.orderID = orderID
	cmd.expectedEditVersion = expectedEditVersion
	cmd.patch = patch
	cmd.reason = reason
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderEditCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderEditCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SubmitOrderEditCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExpectedEditVersion returns the optimistic token the caller read.
func (c SubmitOrderEditCommand) ExpectedEditVersion() int {
	return c.expectedEditVersion
}

// Patch returns the requested changes.
func (c SubmitOrderEditCommand) Patch() EditPatch {
	return c.patch
}

// Reason returns the operator-supplied reason text.
func (c SubmitOrderEditCommand) Reason() string {
	return c.reason
}

// Actor returns the audit context of the submitter.
func (c SubmitOrderEditCommand) Actor() ActorContext {
	return c.actor
}

func validateLineSpecs(specs []order.LineSpec) error {
	if specs == nil {
		return nil
	}
	if len(specs) == 0 {
		return order.ErrNoLinesLeft
	}

	seen := make(map[kernel.UUID]bool, len(specs))
	for _, spec := range specs {
		if err := spec.VariantID.Validate(); err != nil {
			return err
		}
		if seen[spec.VariantID] {
			return fmt.Errorf("%w: %s", order.ErrDuplicateVariant, spec.VariantID)
		}
		seen[spec.VariantID] = true

		if spec.Qty < 1 {
			return errs.NewValueIsInvalidErrorWithCause("qty",
				fmt.Errorf("%d is not at least 1", spec.Qty))
		}
		if spec.UnitPrice < 0 {
			return errs.NewValueIsInvalidErrorWithCause("unitPrice",
				fmt.Errorf("%d is negative", spec.UnitPrice))
		}
	}
	return nil
}
