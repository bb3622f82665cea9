package queries

import (
	"context"
	"database/sql"
	"errors"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its lines from the database.
// Subtotal and total are computed from the line rows here rather than read
// from a stored column, so the read model can never drift from the lines.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. A missing order yields an error unwrapping to
// errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			edit_version,
			courier_type,
			tracking_number,
			booked_at,
			customer_name,
			customer_phone,
			shipping_address,
			city,
			notes,
			shipping_amount,
			discount_total,
			promo_name
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id             uuid.UUID
		status         int
		trackingNumber sql.NullString
		bookedAt       sql.NullTime
	)

	err := row.Scan(
		&id,
		&status,
		&response.EditVersion,
		&response.CourierType,
		&trackingNumber,
		&bookedAt,
		&response.CustomerName,
		&response.CustomerPhone,
		&response.ShippingAddress,
		&response.City,
		&response.Notes,
		&response.ShippingAmount,
		&response.DiscountTotal,
		&response.PromoName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID
	response.Status = order.Status(status).String()
	if trackingNumber.Valid {
		response.TrackingNumber = &trackingNumber.String
	}
	if bookedAt.Valid {
		t := bookedAt.Time
		response.BookedAt = &t
	}

	if response.Lines, err = h.readLines(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	for _, line := range response.Lines {
		response.Subtotal += line.LineTotal
	}
	response.Total = response.Subtotal + response.ShippingAmount - response.DiscountTotal

	return response, nil
}

func (h GetOrderQueryHandler) readLines(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderLineResponse, error) {
	lines := make([]OrderLineResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			variant_id,
			qty,
			unit_price,
			return_condition
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLineResponse
		var id, variantID uuid.UUID
		var returnCondition int

		err = rows.Scan(
			&id,
			&variantID,
			&line.Qty,
			&line.UnitPrice,
			&returnCondition,
		)
		if err != nil {
			return nil, err
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		line.ID = lineID

		vID, idErr := kernel.UUIDFromBytes(variantID[:])
		if idErr != nil {
			return nil, idErr
		}
		line.VariantID = vID

		line.LineTotal = int64(line.Qty) * line.UnitPrice
		line.ReturnCondition = order.ReturnCondition(returnCondition).String()
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
