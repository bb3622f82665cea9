package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/ports"
	"afalstore/internal/pkg/errs"
)

var (
	// ErrCourierTypeMismatch is returned when the order's assigned courier
	// does not match the integration this guard serves.
	ErrCourierTypeMismatch = errors.New("order is assigned to a different courier integration")

	// ErrCityNotMapped is the sentinel under CityNotMappedError.
	ErrCityNotMapped = errors.New("no courier city mapping")

	// ErrBookingNotSaved is the sentinel under BookingNotSavedError.
	ErrBookingNotSaved = errors.New("courier booking succeeded but failed to save")
)

// CityNotMappedError refuses a booking whose destination city has no exact
// mapping to a courier city code. The message names the city so an operator
// can add the mapping.
type CityNotMappedError struct {
	City string
}

func (e *CityNotMappedError) Error() string {
	return fmt.Sprintf("no courier city mapping for %q", e.City)
}

func (e *CityNotMappedError) Unwrap() error {
	return ErrCityNotMapped
}

// BookingNotSavedError marks the dangerous partial-failure window: the courier
// accepted the booking but persisting the tracking number locally failed. The
// courier believes the shipment is booked while the order looks unbooked.
// This is never auto-retried; it requires manual reconciliation against the
// courier API log.
type BookingNotSavedError struct {
	TrackingNumber string
	Cause          error
}

func (e *BookingNotSavedError) Error() string {
	return fmt.Sprintf("courier booking succeeded but failed to save: tracking number is %s (cause: %s)",
		e.TrackingNumber, e.Cause)
}

func (e *BookingNotSavedError) Unwrap() error {
	return ErrBookingNotSaved
}

// BookCourierResult reports the outcome of a booking request.
type BookCourierResult struct {
	TrackingNumber string
	CollectAmount  int64

	// AlreadyBooked reports that the order carried a tracking number before
	// this call; the existing number is returned and no external call is made.
	AlreadyBooked bool
}

// BookCourierCommandHandler is the courier booking guard for one integration.
//
// The booking is a two-phase external effect that is not atomic: (1) call the
// courier API, (2) unconditionally append a CourierApiLogEntry, (3) only on
// success persist tracking number and booking timestamp. The log entry is
// written outside the order transaction so it survives a rolled-back save.
type BookCourierCommandHandler struct {
	uowFactory   OrderUoWFactory
	courierAPI   ports.CourierClient
	cityMappings ports.CityMappingStore
	courierLogs  ports.CourierLogRepository
	productType  string
	logger       *slog.Logger
}

// NewBookCourierCommandHandler creates a booking guard bound to one courier
// client. productType is the partner-side service classification sent with
// every booking (e.g. "COD").
func NewBookCourierCommandHandler(
	uowFactory OrderUoWFactory,
	courierAPI ports.CourierClient,
	cityMappings ports.CityMappingStore,
	courierLogs ports.CourierLogRepository,
	productType string,
	logger *slog.Logger,
) BookCourierCommandHandler {
	return BookCourierCommandHandler{
		uowFactory:   uowFactory,
		courierAPI:   courierAPI,
		cityMappings: cityMappings,
		courierLogs:  courierLogs,
		productType:  productType,
		logger:       logger.With("component", "booking_guard", "courier", string(courierAPI.Type())),
	}
}

// Handle books the order's shipment, holding the order row lock across the
// external call so two concurrent booking attempts serialize and the loser
// sees the winner's tracking number.
func (g BookCourierCommandHandler) Handle(
	ctx context.Context,
	cmd BookCourierCommand,
) (BookCourierResult, error) {
	if err := cmd.Validate(); err != nil {
		return BookCourierResult{}, err
	}

	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BookCourierResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return BookCourierResult{}, err
	}

	// Idempotency guard: an existing tracking number short-circuits the call.
	if o.IsBooked() {
		return BookCourierResult{
			TrackingNumber: *o.TrackingNumber(),
			AlreadyBooked:  true,
		}, nil
	}

	if o.CourierType() != g.courierAPI.Type() {
		return BookCourierResult{}, fmt.Errorf("%w: order has %s, guard serves %s",
			ErrCourierTypeMismatch, o.CourierType(), g.courierAPI.Type())
	}

	mapping, err := g.cityMappings.Lookup(ctx, o.CourierType(), o.Customer().City)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return BookCourierResult{}, &CityNotMappedError{City: o.Customer().City}
		}
		return BookCourierResult{}, err
	}

	// Collect amount is recomputed from the lines at call time, never cached.
	collectAmount := o.Total()

	request := ports.BookingRequest{
		ConsigneeName:       o.Customer().Name,
		ConsigneePhone:      o.Customer().Phone,
		ConsigneeAddress:    o.Customer().Address,
		DestinationCityCode: mapping.CourierCityCode,
		ReferenceNumber:     o.ID().String(),
		CollectAmount:       collectAmount,
		ProductType:         g.productType,
		IdempotencyKey:      kernel.NewUUID().String(),
	}

	confirmation, callErr := g.courierAPI.Book(ctx, request)
	g.appendAPILog(ctx, o.ID(), request, confirmation, callErr)

	if callErr != nil {
		return BookCourierResult{}, callErr
	}

	if err = o.ConfirmBooking(confirmation.TrackingNumber, time.Now().UTC()); err != nil {
		return BookCourierResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return BookCourierResult{}, &BookingNotSavedError{
			TrackingNumber: confirmation.TrackingNumber,
			Cause:          err,
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return BookCourierResult{}, &BookingNotSavedError{
			TrackingNumber: confirmation.TrackingNumber,
			Cause:          err,
		}
	}

	return BookCourierResult{
		TrackingNumber: confirmation.TrackingNumber,
		CollectAmount:  collectAmount,
	}, nil
}

// appendAPILog writes the audit entry for one booking attempt, success or
// failure. A failed audit write is logged loudly but does not change the
// booking outcome: the external call already happened.
func (g BookCourierCommandHandler) appendAPILog(
	ctx context.Context,
	orderID kernel.UUID,
	request ports.BookingRequest,
	confirmation ports.BookingConfirmation,
	callErr error,
) {
	requestJSON, _ := json.Marshal(request)

	var responseJSON []byte
	errorText := ""
	if callErr != nil {
		errorText = callErr.Error()
	} else {
		responseJSON, _ = json.Marshal(confirmation)
	}

	entry, err := courier.NewLogEntry(
		kernel.NewUUID(),
		g.courierAPI.Type(),
		orderID,
		"book",
		string(requestJSON),
		string(responseJSON),
		callErr == nil,
		errorText,
		time.Now().UTC(),
	)
	if err == nil {
		err = g.courierLogs.Add(context.WithoutCancel(ctx), entry)
	}
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to append courier API log entry",
			"order_id", orderID.String(), "error", err)
	}
}
