package order

import (
	"errors"
	"fmt"
	"time"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/pkg/errs"
)

// MinReasonLength is the minimum length of an edit reason.
const MinReasonLength = 3

// ErrEditRecordIsNotConstructed is returned when an EditRecord was not created
// through the NewEditRecord factory method.
var ErrEditRecordIsNotConstructed = errors.New("EditRecord must be created via NewEditRecord constructor")

// EditRecord is the append-only audit entry written for every accepted edit.
// Records are immutable once created; support staff across timezones rely on
// the actor context to reconstruct who changed what and when.
type EditRecord struct {
	id             kernel.UUID
	orderID        kernel.UUID
	reason         string
	diff           string
	actorTimeZone  string
	actorUserAgent string
	createdAt      time.Time

	isConstructed bool
}

// NewEditRecord creates an audit record for an accepted order edit.
// The reason must be at least MinReasonLength characters; the diff is an
// opaque JSON document describing the change.
func NewEditRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	reason string,
	diff string,
	actorTimeZone string,
	actorUserAgent string,
	createdAt time.Time,
) (*EditRecord, error) {
	record := &EditRecord{
		diff:           diff,
		actorTimeZone:  actorTimeZone,
		actorUserAgent: actorUserAgent,
		createdAt:      createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		record.setID(id),
		record.setOrderID(orderID),
		record.setReason(reason),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// RestoreEditRecord reconstructs an edit record from persistence.
func RestoreEditRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	reason string,
	diff string,
	actorTimeZone string,
	actorUserAgent string,
	createdAt time.Time,
) (*EditRecord, error) {
	return NewEditRecord(id, orderID, reason, diff, actorTimeZone, actorUserAgent, createdAt)
}

// Validate ensures the EditRecord was built via its constructor.
func (r *EditRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrEditRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *EditRecord) ID() kernel.UUID {
	return r.id
}

// OrderID returns the identifier of the edited order.
func (r *EditRecord) OrderID() kernel.UUID {
	return r.orderID
}

// Reason returns the operator-supplied reason text.
func (r *EditRecord) Reason() string {
	return r.reason
}

// Diff returns the JSON diff of the edit.
func (r *EditRecord) Diff() string {
	return r.diff
}

// ActorTimeZone returns the IANA timezone of the actor.
func (r *EditRecord) ActorTimeZone() string {
	return r.actorTimeZone
}

// ActorUserAgent returns the user agent string of the actor.
func (r *EditRecord) ActorUserAgent() string {
	return r.actorUserAgent
}

// CreatedAt returns when the edit was accepted.
func (r *EditRecord) CreatedAt() time.Time {
	return r.createdAt
}

func (r *EditRecord) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *EditRecord) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *EditRecord) setReason(reason string) error {
	if len(reason) < MinReasonLength {
		return errs.NewValueIsInvalidErrorWithCause("reason is invalid",
			fmt.Errorf("reason must be at least %d characters", MinReasonLength))
	}
	r.reason = reason
	return nil
}
