package order

import (
	"errors"
	"fmt"
	"time"

	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyBooked is returned when a booking confirmation is applied
	// to an order that already carries a tracking number.
	ErrOrderAlreadyBooked = errors.New("order already has a courier booking")

	// ErrFinancialsLocked is returned when shipping, discount or line changes
	// are applied to an order whose courier booking already exists.
	ErrFinancialsLocked = errors.New("financial fields are locked once a tracking number is set")

	// ErrNoLinesLeft is returned when a line reconciliation would leave the
	// order with zero lines. Such orders must be cancelled instead.
	ErrNoLinesLeft = errors.New("order must retain at least one line")

	// ErrDuplicateVariant is returned when a submitted line set references the
	// same variant twice.
	ErrDuplicateVariant = errors.New("submitted lines reference the same variant twice")
)

// Customer holds the consignee-facing fields of an order.
// These remain editable even after a courier booking locks the financials.
type Customer struct {
	Name    string
	Phone   string
	Address string
	City    string
	Notes   string
}

// ContactPatch carries optional updates to the customer fields.
// Nil members leave the current value untouched.
type ContactPatch struct {
	Name    *string
	Phone   *string
	Address *string
	City    *string
	Notes   *string
}

// LineSpec describes one submitted line in an edit.
// A nil ID marks an insertion; a known ID updates the existing line.
type LineSpec struct {
	ID        *kernel.UUID
	VariantID kernel.UUID
	Qty       int
	UnitPrice int64
}

// LineDiff summarizes the outcome of a line reconciliation.
type LineDiff struct {
	Added   []kernel.UUID
	Updated []kernel.UUID
	Removed []kernel.UUID
}

// ReturnLine carries the per-line data forwarded to the ledger when an order
// moves to the returned status.
type ReturnLine struct {
	LineID    kernel.UUID
	VariantID kernel.UUID
	Qty       int
	Condition ReturnCondition
}

// Order is the aggregate root for the order lifecycle.
//
// Invariants:
//   - status is always one of the seven enumerated values
//   - editVersion strictly increases on each accepted edit, never decreases
//   - once a tracking number is set, shipping, discount and lines are immutable
//     through the edit path
//   - the order always retains at least one line
//
// The status field is mutated only by the status dispatcher, every other
// mutable field only by the edit coordinator. Orders are never hard-deleted.
type Order struct {
	id             kernel.UUID
	status         Status
	editVersion    int
	courierType    courier.Type
	trackingNumber *string
	bookedAt       *time.Time
	customer       Customer
	shippingAmount int64
	discountTotal  int64
	promoName      string
	lines          []*Line

	isConstructed bool
}

// NewOrder creates an order in Pending status with edit version 1.
// Checkout is the only producer of new orders; everything after creation goes
// through the dispatcher, coordinator or booking guard.
func NewOrder(
	id kernel.UUID,
	courierType courier.Type,
	customer Customer,
	shippingAmount int64,
	discountTotal int64,
	promoName string,
	lines []*Line,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		editVersion:   1,
		promoName:     promoName,
		customer:      customer,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCourierType(courierType),
		order.setShippingAmount(shippingAmount),
		order.setDiscountTotal(discountTotal),
		order.setLines(lines),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	editVersion int,
	courierType courier.Type,
	trackingNumber *string,
	bookedAt *time.Time,
	customer Customer,
	shippingAmount int64,
	discountTotal int64,
	promoName string,
	lines []*Line,
) (*Order, error) {
	order, err := NewOrder(id, courierType, customer, shippingAmount, discountTotal, promoName, lines)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if editVersion < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("edit version is invalid",
			fmt.Errorf("%d is not at least 1", editVersion))
	}

	order.status = status
	order.editVersion = editVersion
	order.trackingNumber = trackingNumber
	order.bookedAt = bookedAt
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// EditVersion returns the optimistic-concurrency token for the aggregate.
func (o *Order) EditVersion() int {
	return o.editVersion
}

// CourierType returns the courier integration assigned to this order.
func (o *Order) CourierType() courier.Type {
	return o.courierType
}

// TrackingNumber returns the courier-issued consignment number, nil when the
// order is not yet booked.
func (o *Order) TrackingNumber() *string {
	return o.trackingNumber
}

// BookedAt returns the booking timestamp, nil when not yet booked.
func (o *Order) BookedAt() *time.Time {
	return o.bookedAt
}

// Customer returns the consignee fields.
func (o *Order) Customer() Customer {
	return o.customer
}

// ShippingAmount returns the shipping charge.
func (o *Order) ShippingAmount() int64 {
	return o.shippingAmount
}

// DiscountTotal returns the total discount applied to the order.
func (o *Order) DiscountTotal() int64 {
	return o.discountTotal
}

// PromoName returns the name of the applied promotion, empty when none.
func (o *Order) PromoName() string {
	return o.promoName
}

// Lines returns the order's lines.
func (o *Order) Lines() []*Line {
	return o.lines
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() int64 {
	var sum int64
	for _, line := range o.lines {
		sum += line.Total()
	}
	return sum
}

// Total returns subtotal + shipping - discount. This is the collect amount
// for cash-on-delivery and is always derived fresh, never cached.
func (o *Order) Total() int64 {
	return o.Subtotal() + o.shippingAmount - o.discountTotal
}

// IsBooked reports whether a courier booking exists for this order.
// Either the tracking number or the booking timestamp marks the order booked.
func (o *Order) IsBooked() bool {
	return o.trackingNumber != nil || o.bookedAt != nil
}

// SetStatus writes a new status on the aggregate.
//
// Transition legality is NOT re-checked here: services.TransitionValidator is
// the single authoritative rule table, and duplicating it would reintroduce
// the drift this design removes. Only enum membership is enforced.
func (o *Order) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// ConfirmBooking records the courier-issued tracking number and timestamp.
// Fails when a booking already exists.
func (o *Order) ConfirmBooking(trackingNumber string, bookedAt time.Time) error {
	if o.IsBooked() {
		return ErrOrderAlreadyBooked
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	o.trackingNumber = &trackingNumber
	o.bookedAt = &bookedAt
	return nil
}

// ApplyContact applies a contact patch. Contact fields stay editable after a
// booking exists.
func (o *Order) ApplyContact(patch ContactPatch) {
	if patch.Name != nil {
		o.customer.Name = *patch.Name
	}
	if patch.Phone != nil {
		o.customer.Phone = *patch.Phone
	}
	if patch.Address != nil {
		o.customer.Address = *patch.Address
	}
	if patch.City != nil {
		o.customer.City = *patch.City
	}
	if patch.Notes != nil {
		o.customer.Notes = *patch.Notes
	}
}

// ApplyFinancials updates shipping amount, discount total and promo name.
// Refused outright once a booking exists; the coordinator additionally
// discards these fields at its boundary so a booked order never reaches here.
func (o *Order) ApplyFinancials(shippingAmount, discountTotal *int64, promoName *string) error {
	if o.IsBooked() {
		return ErrFinancialsLocked
	}

	if shippingAmount != nil {
		if err := o.setShippingAmount(*shippingAmount); err != nil {
			return err
		}
	}
	if discountTotal != nil {
		if err := o.setDiscountTotal(*discountTotal); err != nil {
			return err
		}
	}
	if promoName != nil {
		o.promoName = *promoName
	}
	return nil
}

// ReconcileLines replaces the order's line set with the submitted one.
//
// A spec without an ID is an insertion, an existing line absent from the
// submitted set is a deletion, and a known ID with changed qty or unit price
// is an update. The reconciliation is all-or-nothing: any invalid spec leaves
// the order untouched.
func (o *Order) ReconcileLines(specs []LineSpec) (LineDiff, error) {
	if o.IsBooked() {
		return LineDiff{}, ErrFinancialsLocked
	}
	if len(specs) == 0 {
		return LineDiff{}, ErrNoLinesLeft
	}

	seenVariants := make(map[kernel.UUID]bool, len(specs))
	for _, spec := range specs {
		if seenVariants[spec.VariantID] {
			return LineDiff{}, fmt.Errorf("%w: %s", ErrDuplicateVariant, spec.VariantID)
		}
		seenVariants[spec.VariantID] = true
	}

	existing := make(map[kernel.UUID]*Line, len(o.lines))
	for _, line := range o.lines {
		existing[line.ID()] = line
	}

	var diff LineDiff
	newLines := make([]*Line, 0, len(specs))
	submitted := make(map[kernel.UUID]bool, len(specs))

	for _, spec := range specs {
		if spec.ID == nil {
			line, err := NewLine(kernel.NewUUID(), spec.VariantID, spec.Qty, spec.UnitPrice)
			if err != nil {
				return LineDiff{}, err
			}
			newLines = append(newLines, line)
			diff.Added = append(diff.Added, line.ID())
			continue
		}

		line, ok := existing[*spec.ID]
		if !ok {
			return LineDiff{}, errs.NewObjectNotFoundError("line", spec.ID.String())
		}
		submitted[*spec.ID] = true

		if line.Qty() != spec.Qty || line.UnitPrice() != spec.UnitPrice {
			if err := line.amend(spec.Qty, spec.UnitPrice); err != nil {
				return LineDiff{}, err
			}
			diff.Updated = append(diff.Updated, line.ID())
		}
		newLines = append(newLines, line)
	}

	for _, line := range o.lines {
		if !submitted[line.ID()] {
			diff.Removed = append(diff.Removed, line.ID())
		}
	}

	o.lines = newLines
	return diff, nil
}

// BumpEditVersion advances the optimistic-concurrency token by one.
// Called by the edit coordinator once an edit is accepted; the repository
// persists the new version with a compare-and-swap against the old one.
func (o *Order) BumpEditVersion() {
	o.editVersion++
}

// CaptureReturnConditions records per-line return conditions from a request.
// Lines omitted from the map keep ConditionUnset.
func (o *Order) CaptureReturnConditions(conditions map[kernel.UUID]ReturnCondition) {
	for _, line := range o.lines {
		if condition, ok := conditions[line.ID()]; ok {
			line.CaptureReturnCondition(condition)
		}
	}
}

// ReturnLines builds the per-line payload forwarded to the ledger when the
// order transitions to returned.
func (o *Order) ReturnLines() []ReturnLine {
	returnLines := make([]ReturnLine, 0, len(o.lines))
	for _, line := range o.lines {
		returnLines = append(returnLines, ReturnLine{
			LineID:    line.ID(),
			VariantID: line.VariantID(),
			Qty:       line.Qty(),
			Condition: line.ReturnCondition(),
		})
	}
	return returnLines
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCourierType(courierType courier.Type) error {
	if err := courierType.Validate(); err != nil {
		return err
	}
	o.courierType = courierType
	return nil
}

func (o *Order) setShippingAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipping amount is invalid",
			fmt.Errorf("%d is negative", amount))
	}
	o.shippingAmount = amount
	return nil
}

func (o *Order) setDiscountTotal(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("discount total is invalid",
			fmt.Errorf("%d is negative", amount))
	}
	o.discountTotal = amount
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrNoLinesLeft
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = lines
	return nil
}
