// Package http is the inbound HTTP adapter: thin echo handlers that translate
// requests into commands and queries and map domain errors onto the API's
// error codes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"afalstore/internal/adapters/out/courierapi"
	"afalstore/internal/adapters/out/ledgerapi"
	"afalstore/internal/core/application/usecases/commands"
	"afalstore/internal/core/application/usecases/queries"
	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/core/domain/services"
	"afalstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	submitEditHandler   commands.SubmitOrderEditCommandHandler
	bookCourierHandler  commands.BookCourierCommandHandler

	getOrderHandler       queries.GetOrderQueryHandler
	getEditHistoryHandler queries.GetOrderEditHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	submitEditHandler commands.SubmitOrderEditCommandHandler,
	bookCourierHandler commands.BookCourierCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getEditHistoryHandler queries.GetOrderEditHistoryQueryHandler,
) *Server {
	return &Server{
		changeStatusHandler:   changeStatusHandler,
		submitEditHandler:     submitEditHandler,
		bookCourierHandler:    bookCourierHandler,
		getOrderHandler:       getOrderHandler,
		getEditHistoryHandler: getEditHistoryHandler,
	}
}

// RegisterRoutes wires the API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders/:id/status", s.ChangeOrderStatus)
	v1.POST("/orders/:id/edits", s.SubmitOrderEdit)
	v1.POST("/orders/:id/booking", s.BookCourier)
	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/orders/:id/edits", s.GetOrderEditHistory)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, CodeValidation, "invalid order id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, CodeValidation, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, CodeInvalidStatus, "unknown status: "+req.Status)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.ReturnConditions)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ChangeStatusResponse{Status: result.Status.String()})
}

// SubmitOrderEdit handles POST /api/v1/orders/:id/edits.
func (s *Server) SubmitOrderEdit(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, CodeValidation, "invalid order id")
	}

	var req SubmitEditRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, CodeValidation, "invalid request body")
	}

	patch, err := toEditPatch(req)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitOrderEditCommand(
		orderID,
		req.ExpectedEditVersion,
		patch,
		req.Reason,
		commands.ActorContext{
			TimeZone:  req.TimeZone,
			UserAgent: ctx.Request().UserAgent(),
		},
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.submitEditHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SubmitEditResponse{
		Subtotal:       result.Subtotal,
		ShippingAmount: result.ShippingAmount,
		DiscountTotal:  result.DiscountTotal,
		Total:          result.Total,
		NewEditVersion: result.NewEditVersion,
		CNBooked:       result.CNBooked,
	})
}

// BookCourier handles POST /api/v1/orders/:id/booking.
func (s *Server) BookCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, CodeValidation, "invalid order id")
	}

	cmd, err := commands.NewBookCourierCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bookCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	status := http.StatusCreated
	if result.AlreadyBooked {
		status = http.StatusOK
	}
	return ctx.JSON(status, BookCourierResponse{
		TrackingNumber: result.TrackingNumber,
		CollectAmount:  result.CollectAmount,
		AlreadyBooked:  result.AlreadyBooked,
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, CodeValidation, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// GetOrderEditHistory handles GET /api/v1/orders/:id/edits.
func (s *Server) GetOrderEditHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, CodeValidation, "invalid order id")
	}

	query, err := queries.NewGetOrderEditHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.getEditHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]EditRecordView, len(records))
	for i, record := range records {
		response[i] = EditRecordView{
			ID:             record.ID.String(),
			Reason:         record.Reason,
			Diff:           json.RawMessage(record.Diff),
			ActorTimeZone:  record.ActorTimeZone,
			ActorUserAgent: record.ActorUserAgent,
			CreatedAt:      record.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func toEditPatch(req SubmitEditRequest) (commands.EditPatch, error) {
	patch := commands.EditPatch{
		Contact: order.ContactPatch{
			Name:    req.Contact.CustomerName,
			Phone:   req.Contact.CustomerPhone,
			Address: req.Contact.ShippingAddress,
			City:    req.Contact.City,
			Notes:   req.Contact.Notes,
		},
		ShippingAmount: req.ShippingAmount,
		DiscountTotal:  req.DiscountTotal,
		PromoName:      req.PromoName,
	}

	if req.Lines == nil {
		return patch, nil
	}

	patch.Lines = make([]order.LineSpec, 0, len(req.Lines))
	for _, line := range req.Lines {
		spec := order.LineSpec{
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		}

		variantID, err := kernel.UUIDFromString(line.VariantID)
		if err != nil {
			return commands.EditPatch{}, err
		}
		spec.VariantID = variantID

		if line.ID != nil {
			lineID, idErr := kernel.UUIDFromString(*line.ID)
			if idErr != nil {
				return commands.EditPatch{}, idErr
			}
			spec.ID = &lineID
		}

		patch.Lines = append(patch.Lines, spec)
	}
	return patch, nil
}

func toOrderView(view queries.GetOrderQueryResponse) OrderView {
	lines := make([]OrderLineView, len(view.Lines))
	for i, line := range view.Lines {
		condition := line.ReturnCondition
		if condition == order.ConditionUnset.String() {
			condition = ""
		}
		lines[i] = OrderLineView{
			ID:              line.ID.String(),
			VariantID:       line.VariantID.String(),
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.LineTotal,
			ReturnCondition: condition,
		}
	}

	return OrderView{
		ID:              view.ID.String(),
		Status:          view.Status,
		EditVersion:     view.EditVersion,
		CourierType:     view.CourierType,
		TrackingNumber:  view.TrackingNumber,
		BookedAt:        view.BookedAt,
		CustomerName:    view.CustomerName,
		CustomerPhone:   view.CustomerPhone,
		ShippingAddress: view.ShippingAddress,
		City:            view.City,
		Notes:           view.Notes,
		ShippingAmount:  view.ShippingAmount,
		DiscountTotal:   view.DiscountTotal,
		PromoName:       view.PromoName,
		Lines:           lines,
		Subtotal:        view.Subtotal,
		Total:           view.Total,
	}
}

func badRequest(ctx echo.Context, code, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: code, Message: message})
}

// writeError maps domain and application errors onto the API error envelope.
func writeError(ctx echo.Context, err error) error {
	var cityErr *commands.CityNotMappedError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{Code: CodeNotFound, Message: err.Error()})

	case errors.Is(err, services.ErrTransitionDenied):
		return ctx.JSON(http.StatusConflict, Error{Code: CodeTransitionDenied, Message: err.Error()})

	case errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{Code: CodeConcurrency, Message: err.Error()})

	case errors.Is(err, commands.ErrOrderNotEditable):
		return ctx.JSON(http.StatusConflict, Error{Code: CodeInvalidStatus, Message: err.Error()})

	case errors.Is(err, commands.ErrBookingNotSaved):
		return ctx.JSON(http.StatusInternalServerError, Error{Code: CodeBookingNotSaved, Message: err.Error()})

	case errors.As(err, &cityErr),
		errors.Is(err, commands.ErrCourierTypeMismatch),
		errors.Is(err, order.ErrNoLinesLeft),
		errors.Is(err, order.ErrDuplicateVariant),
		errors.Is(err, order.ErrFinancialsLocked):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{Code: CodeValidation, Message: err.Error()})

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{Code: CodeValidation, Message: err.Error()})

	case errors.Is(err, ledgerapi.ErrLedgerRejected),
		errors.Is(err, ledgerapi.ErrLedgerUnavailable),
		errors.Is(err, courierapi.ErrBookingRejected),
		errors.Is(err, courierapi.ErrCourierUnavailable):
		return ctx.JSON(http.StatusBadGateway, Error{Code: CodeExternalService, Message: err.Error()})

	default:
		return ctx.JSON(http.StatusInternalServerError, Error{Code: CodeInternal, Message: "internal error"})
	}
}
