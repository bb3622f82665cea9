package commands

import (
	"context"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/core/domain/services"
	"afalstore/internal/core/ports"
)

// ChangeOrderStatusResult reports the outcome of a status change.
type ChangeOrderStatusResult struct {
	Status order.Status

	// LedgerCalled reports whether the ledger service was invoked.
	// A no-op transition never calls the ledger, which is what makes
	// repeated identical requests idempotent.
	LedgerCalled bool
}

// ChangeOrderStatusCommandHandler is the order status dispatcher: it composes
// the transition validator, the conditional ledger call and the persistence
// write.
//
// Side-effect ordering is fixed: for ledger-adjusting transitions the ledger
// goes first and the status is persisted only on ledger success, so a failed
// adjustment leaves the order byte-for-byte unchanged. For pending→cancelled
// the reservation release precedes the status write without a shared
// transaction; a release that succeeds right before a crash is the documented
// hazard of that pair.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, ledger)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Cancelled, nil)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrTransitionDenied) {
//	    // disallowed pair, nothing changed
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     ports.LedgerClient
	validator  services.TransitionValidator
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	ledger ports.LedgerClient,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		validator:  services.NewTransitionValidator(),
	}
}

// Handle processes one status change under a row lock on the order.
// Ledger errors are surfaced verbatim with the status write skipped.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	decision, err := h.validator.Decide(o, cmd.Target(), cmd.ReturnConditions())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	switch decision.Effect {
	case services.EffectNone:
		// Requested status already in place; succeed without writes.
		return ChangeOrderStatusResult{Status: o.Status()}, nil

	case services.EffectStatusOnly:
		ledgerCalled := false
		if decision.ReleaseReservation {
			key := kernel.NewUUID().String()
			if err = h.ledger.ReleaseReservation(ctx, o.ID(), key); err != nil {
				return ChangeOrderStatusResult{}, err
			}
			ledgerCalled = true
		}
		if err = h.writeStatus(ctx, orderRepo, uow, o, cmd.Target()); err != nil {
			return ChangeOrderStatusResult{}, err
		}
		return ChangeOrderStatusResult{Status: cmd.Target(), LedgerCalled: ledgerCalled}, nil

	default: // services.EffectLedgerAdjust
		adjustment := ports.StockAdjustment{
			OrderID:        o.ID(),
			From:           o.Status(),
			To:             cmd.Target(),
			ReturnLines:    decision.ReturnLines,
			IdempotencyKey: kernel.NewUUID().String(),
		}
		if err = h.ledger.AdjustForStatusChange(ctx, adjustment); err != nil {
			return ChangeOrderStatusResult{}, err
		}
		if cmd.Target() == order.Returned {
			o.CaptureReturnConditions(cmd.ReturnConditions())
		}
		if err = h.writeStatus(ctx, orderRepo, uow, o, cmd.Target()); err != nil {
			return ChangeOrderStatusResult{}, err
		}
		return ChangeOrderStatusResult{Status: cmd.Target(), LedgerCalled: true}, nil
	}
}

func (h ChangeOrderStatusCommandHandler) writeStatus(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	uow OrderUoW,
	o *order.Order,
	target order.Status,
) error {
	if err := o.SetStatus(target); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
