package queries

import (
	"context"

	"afalstore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderEditHistoryQueryHandler reads an order's edit records from the
// database, newest first. An order with no edits yields an empty slice, not
// an error.
type GetOrderEditHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEditHistoryQueryHandler creates a handler for edit history reads.
func NewGetOrderEditHistoryQueryHandler(db *gorm.DB) GetOrderEditHistoryQueryHandler {
	return GetOrderEditHistoryQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderEditHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEditHistoryQuery,
) ([]GetOrderEditHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetOrderEditHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reason,
			diff,
			actor_time_zone,
			actor_user_agent,
			created_at
		FROM order_edit_records
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetOrderEditHistoryQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&record.Reason,
			&record.Diff,
			&record.ActorTimeZone,
			&record.ActorUserAgent,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ID = recordID
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
