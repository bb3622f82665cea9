package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/pkg/errs"
)

// ErrOrderNotEditable is returned when an edit targets an order whose status
// no longer permits content changes (anything past packed).
var ErrOrderNotEditable = errors.New("order status does not permit edits")

// SubmitOrderEditResult reports the outcome of an accepted edit.
type SubmitOrderEditResult struct {
	Subtotal       int64
	ShippingAmount int64
	DiscountTotal  int64
	Total          int64
	NewEditVersion int

	// CNBooked reports whether a courier booking exists; when true the
	// financial and line parts of the patch were discarded at the boundary.
	CNBooked bool
}

// SubmitOrderEditCommandHandler is the order edit coordinator.
//
// Edits run under a row lock plus a compare-and-swap on edit_version: of two
// editors racing with the same expected version exactly one wins, the other
// receives a stale-version error and must re-fetch. No partial field is ever
// applied on rejection.
//
// The CN lock is enforced here, not in any UI: once a tracking number or
// booking timestamp exists, shippingAmount, discountTotal and lines are
// discarded from the patch before the aggregate sees them, and only the
// contact fields go through.
type SubmitOrderEditCommandHandler struct {
	uowFactory EditUoWFactory
}

// NewSubmitOrderEditCommandHandler creates a handler for order edits.
func NewSubmitOrderEditCommandHandler(uowFactory EditUoWFactory) SubmitOrderEditCommandHandler {
	return SubmitOrderEditCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies one edit atomically: field patch, line reconciliation,
// version bump and audit record all commit together or not at all.
func (h SubmitOrderEditCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitOrderEditCommand,
) (SubmitOrderEditResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderEditResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitOrderEditResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return SubmitOrderEditResult{}, err
	}

	if !o.Status().IsEditable() {
		return SubmitOrderEditResult{}, fmt.Errorf("%w: %s", ErrOrderNotEditable, o.Status())
	}

	// The row lock makes this check authoritative: a concurrent editor that
	// already won has bumped the stored version, so the loser fails here.
	if o.EditVersion() != cmd.ExpectedEditVersion() {
		return SubmitOrderEditResult{}, errs.NewVersionIsInvalidError("editVersion",
			fmt.Errorf("expected %d, stored %d", cmd.ExpectedEditVersion(), o.EditVersion()))
	}

	patch := cmd.Patch()
	cnBooked := o.IsBooked()
	if cnBooked {
		// CN lock: financials and lines are discarded, not errored.
		patch.ShippingAmount = nil
		patch.DiscountTotal = nil
		patch.PromoName = nil
		patch.Lines = nil
	}

	before := snapshotOrder(o)

	o.ApplyContact(patch.Contact)

	var lineDiff order.LineDiff
	if patch.ShippingAmount != nil || patch.DiscountTotal != nil || patch.PromoName != nil {
		if err = o.ApplyFinancials(patch.ShippingAmount, patch.DiscountTotal, patch.PromoName); err != nil {
			return SubmitOrderEditResult{}, err
		}
	}
	if patch.Lines != nil {
		if lineDiff, err = o.ReconcileLines(patch.Lines); err != nil {
			return SubmitOrderEditResult{}, err
		}
	}

	o.BumpEditVersion()
	if err = orderRepo.UpdateWithVersion(ctx, o, cmd.ExpectedEditVersion()); err != nil {
		return SubmitOrderEditResult{}, err
	}

	diff, err := buildEditDiff(before, o, lineDiff)
	if err != nil {
		return SubmitOrderEditResult{}, err
	}

	record, err := order.NewEditRecord(
		kernel.NewUUID(),
		o.ID(),
		cmd.Reason(),
		diff,
		cmd.Actor().TimeZone,
		cmd.Actor().UserAgent,
		time.Now().UTC(),
	)
	if err != nil {
		return SubmitOrderEditResult{}, err
	}
	if err = uow.EditRecordRepository().Add(ctx, record); err != nil {
		return SubmitOrderEditResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitOrderEditResult{}, err
	}

	return SubmitOrderEditResult{
		Subtotal:       o.Subtotal(),
		ShippingAmount: o.ShippingAmount(),
		DiscountTotal:  o.DiscountTotal(),
		Total:          o.Total(),
		NewEditVersion: o.EditVersion(),
		CNBooked:       cnBooked,
	}, nil
}

// orderSnapshot captures the mutable fields of an order for diffing.
type orderSnapshot struct {
	Customer       order.Customer
	ShippingAmount int64
	DiscountTotal  int64
	PromoName      string
}

func snapshotOrder(o *order.Order) orderSnapshot {
	return orderSnapshot{
		Customer:       o.Customer(),
		ShippingAmount: o.ShippingAmount(),
		DiscountTotal:  o.DiscountTotal(),
		PromoName:      o.PromoName(),
	}
}

type fieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

type editDiffDocument struct {
	Fields map[string]fieldChange `json:"fields,omitempty"`
	Lines  *lineDiffDocument      `json:"lines,omitempty"`
}

type lineDiffDocument struct {
	Added   []string `json:"added,omitempty"`
	Updated []string `json:"updated,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// buildEditDiff serializes what actually changed, field by field, for the
// audit record.
func buildEditDiff(before orderSnapshot, o *order.Order, lineDiff order.LineDiff) (string, error) {
	doc := editDiffDocument{Fields: make(map[string]fieldChange)}

	after := snapshotOrder(o)
	compare := func(name string, from, to any) {
		if from != to {
			doc.Fields[name] = fieldChange{From: from, To: to}
		}
	}

	compare("customerName", before.Customer.Name, after.Customer.Name)
	compare("customerPhone", before.Customer.Phone, after.Customer.Phone)
	compare("shippingAddress", before.Customer.Address, after.Customer.Address)
	compare("city", before.Customer.City, after.Customer.City)
	compare("notes", before.Customer.Notes, after.Customer.Notes)
	compare("shippingAmount", before.ShippingAmount, after.ShippingAmount)
	compare("discountTotal", before.DiscountTotal, after.DiscountTotal)
	compare("promoName", before.PromoName, after.PromoName)

	if len(lineDiff.Added)+len(lineDiff.Updated)+len(lineDiff.Removed) > 0 {
		doc.Lines = &lineDiffDocument{
			Added:   uuidsToStrings(lineDiff.Added),
			Updated: uuidsToStrings(lineDiff.Updated),
			Removed: uuidsToStrings(lineDiff.Removed),
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func uuidsToStrings(ids []kernel.UUID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
