package order

import (
	"errors"
	"fmt"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line represents a single variant position on an order.
//
// Invariants:
//   - qty is at least 1
//   - unit price is never negative
//   - the line total is always qty * unit price (derived, never stored apart)
type Line struct {
	id              kernel.UUID
	variantID       kernel.UUID
	qty             int
	unitPrice       int64
	returnCondition ReturnCondition

	isConstructed bool
}

// NewLine creates a validated order line with no return condition captured.
func NewLine(id kernel.UUID, variantID kernel.UUID, qty int, unitPrice int64) (*Line, error) {
	line := &Line{
		returnCondition: ConditionUnset,
		isConstructed:   true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setVariantID(variantID),
		line.setQty(qty),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine reconstructs a line from persistence, including a previously
// captured return condition.
func RestoreLine(
	id kernel.UUID,
	variantID kernel.UUID,
	qty int,
	unitPrice int64,
	condition ReturnCondition,
) (*Line, error) {
	line, err := NewLine(id, variantID, qty, unitPrice)
	if err != nil {
		return nil, err
	}

	line.returnCondition = condition
	return line, nil
}

// Validate ensures the Line was built via NewLine or RestoreLine.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// VariantID returns the identifier of the product variant on this line.
func (l *Line) VariantID() kernel.UUID {
	return l.variantID
}

// Qty returns the ordered quantity.
func (l *Line) Qty() int {
	return l.qty
}

// UnitPrice returns the price per unit.
func (l *Line) UnitPrice() int64 {
	return l.unitPrice
}

// Total returns the line total, derived as qty * unit price.
func (l *Line) Total() int64 {
	return int64(l.qty) * l.unitPrice
}

// ReturnCondition returns the captured return condition for this line.
func (l *Line) ReturnCondition() ReturnCondition {
	return l.returnCondition
}

// CaptureReturnCondition records the condition the line came back in.
func (l *Line) CaptureReturnCondition(condition ReturnCondition) {
	l.returnCondition = condition
}

// amend updates qty and unit price during line reconciliation.
func (l *Line) amend(qty int, unitPrice int64) error {
	if err := errors.Join(
		l.setQty(qty),
		l.setUnitPrice(unitPrice),
	); err != nil {
		return err
	}
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	l.variantID = variantID
	return nil
}

func (l *Line) setQty(qty int) error {
	if qty < 1 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not at least 1", qty))
	}
	l.qty = qty
	return nil
}

func (l *Line) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}
