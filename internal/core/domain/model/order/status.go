package order

import (
	"fmt"

	"afalstore/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// The enum is closed: every persisted order carries exactly one of the seven
// named values. Transition legality between statuses is decided in one place,
// services.TransitionValidator; Status itself only knows its own identity,
// its wire name, and two intrinsic properties (terminal, editable).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout.
	// Stock is reserved in the ledger while an order sits here.
	Pending

	// Packed indicates the order has been picked and packed for handover.
	Packed

	// Shipped indicates the parcel has been handed to the courier.
	Shipped

	// Delivered indicates the courier reported successful delivery.
	Delivered

	// ReturnInTransit indicates a customer return is on its way back.
	ReturnInTransit

	// Cancelled indicates the order was called off before completion.
	Cancelled

	// Returned indicates the return was received. Terminal: no outbound
	// transition is ever allowed from this status.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		Packed:          "packed",
		Shipped:         "shipped",
		Delivered:       "delivered",
		ReturnInTransit: "return_in_transit",
		Cancelled:       "cancelled",
		Returned:        "returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:         "pending",
		Packed:          "packed",
		Shipped:         "shipped",
		Delivered:       "delivered",
		ReturnInTransit: "return_in_transit",
		Cancelled:       "cancelled",
		Returned:        "returned",
	}
}

// StatusFromString parses the wire name of a status.
// Returns an error for any name outside the closed enum, so malformed input
// is rejected before any side effect is attempted.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the seven enumerated values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "packed", ...).
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no outbound transition.
func (s Status) IsTerminal() bool {
	return s == Returned
}

// IsEditable reports whether order contents may still be changed through the
// edit path while in this status.
func (s Status) IsEditable() bool {
	return s == Pending || s == Packed
}
