package courier

import "afalstore/internal/pkg/errs"

// Type identifies a courier integration ("leopards", "tcs", ...).
// An order carries the type of the courier assigned to it, and each booking
// guard instance serves exactly one type; bookings across mismatched types
// are refused.
type Type string

// Known courier integrations. The set is open: new partners only need a
// city mapping table and API credentials, not a code change here.
const (
	TypeLeopards Type = "leopards"
	TypeTCS      Type = "tcs"
	TypeTrax     Type = "trax"
)

// Validate checks that the type is non-empty.
func (t Type) Validate() error {
	if t == "" {
		return errs.NewValueIsRequiredError("courier type")
	}
	return nil
}

// String returns the type's wire name.
func (t Type) String() string {
	return string(t)
}
