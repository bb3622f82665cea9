package services

import (
	"errors"
	"fmt"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
)

// ErrTransitionDenied is returned when a requested status change is not
// permitted from the order's current status.
var ErrTransitionDenied = errors.New("status transition denied")

// Effect classifies the side effect a permitted transition requires.
type Effect int

const (
	// EffectNone means the requested status equals the current one;
	// nothing is written and no external call is made.
	EffectNone Effect = iota

	// EffectStatusOnly means only the status field is persisted.
	EffectStatusOnly

	// EffectLedgerAdjust means the inventory ledger must adjust stock first;
	// the status is persisted only if the ledger call succeeds.
	EffectLedgerAdjust
)

// Decision is the validator's verdict for a requested transition.
type Decision struct {
	Effect Effect

	// ReleaseReservation marks the pending→cancelled variant: the ledger
	// releases the checkout reservation before the status write. The two
	// steps are not transactionally linked.
	ReleaseReservation bool

	// ReturnLines carries the per-line payload for the ledger when the
	// target status is returned, nil otherwise.
	ReturnLines []order.ReturnLine
}

// TransitionValidator is the single authoritative rule table for status
// transitions. It is a pure domain service: no I/O, no persistence — it only
// inspects the order and the requested target.
//
// Rule table over the 7-status enum:
//   - same status requested: no-op
//   - returned is terminal: no outbound transition
//   - shipped→cancelled and delivered→cancelled: denied
//   - →returned: allowed only from shipped, delivered or return_in_transit
//   - pending→cancelled: status write preceded by a reservation release
//   - shipped→{return_in_transit, delivered}, delivered→return_in_transit,
//     pending→packed, packed→{shipped, pending}: status write only
//   - every other allowed pair: ledger adjustment, then status write
//
// The source set for returned deliberately includes delivered (the inclusive
// rule set; the legacy system carried two diverging copies of this table).
type TransitionValidator struct{}

// NewTransitionValidator creates a TransitionValidator.
func NewTransitionValidator() TransitionValidator {
	return TransitionValidator{}
}

// Decide validates the requested transition and classifies its side effect.
//
// The conditions map carries per-line return conditions parsed from the
// request; it is consulted only when the target status is returned, and lines
// omitted from it pass through with ConditionUnset.
//
// Returns ErrTransitionDenied (wrapped with the offending pair) for disallowed
// transitions, or a validation error when the target is outside the enum.
// Nothing is mutated on the order either way.
func (v TransitionValidator) Decide(
	o *order.Order,
	target order.Status,
	conditions map[kernel.UUID]order.ReturnCondition,
) (Decision, error) {
	if err := o.Validate(); err != nil {
		return Decision{}, err
	}
	if err := target.Validate(); err != nil {
		return Decision{}, err
	}

	current := o.Status()

	if current == target {
		return Decision{Effect: EffectNone}, nil
	}

	if current.IsTerminal() {
		return Decision{}, denied(current, target)
	}

	if target == order.Cancelled && (current == order.Shipped || current == order.Delivered) {
		return Decision{}, denied(current, target)
	}

	if target == order.Returned &&
		current != order.Shipped && current != order.Delivered && current != order.ReturnInTransit {
		return Decision{}, denied(current, target)
	}

	if current == order.Pending && target == order.Cancelled {
		return Decision{Effect: EffectStatusOnly, ReleaseReservation: true}, nil
	}

	if isStatusOnly(current, target) {
		return Decision{Effect: EffectStatusOnly}, nil
	}

	decision := Decision{Effect: EffectLedgerAdjust}
	if target == order.Returned {
		decision.ReturnLines = returnLines(o, conditions)
	}
	return decision, nil
}

// returnLines overlays the parsed condition map onto the order's lines
// without touching the aggregate. Lines absent from the map stay unset.
func returnLines(o *order.Order, conditions map[kernel.UUID]order.ReturnCondition) []order.ReturnLine {
	lines := make([]order.ReturnLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		condition := line.ReturnCondition()
		if c, ok := conditions[line.ID()]; ok {
			condition = c
		}
		lines = append(lines, order.ReturnLine{
			LineID:    line.ID(),
			VariantID: line.VariantID(),
			Qty:       line.Qty(),
			Condition: condition,
		})
	}
	return lines
}

// isStatusOnly lists the allowed pairs that move the parcel along its normal
// path without any inventory consequence.
func isStatusOnly(from, to order.Status) bool {
	switch {
	case from == order.Pending && to == order.Packed:
		return true
	case from == order.Packed && to == order.Shipped:
		return true
	case from == order.Packed && to == order.Pending:
		return true
	case from == order.Shipped && to == order.Delivered:
		return true
	case from == order.Shipped && to == order.ReturnInTransit:
		return true
	case from == order.Delivered && to == order.ReturnInTransit:
		return true
	default:
		return false
	}
}

func denied(from, to order.Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrTransitionDenied, from, to)
}
