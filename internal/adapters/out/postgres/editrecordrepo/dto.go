// Package editrecordrepo persists the append-only order edit trail.
package editrecordrepo

import (
	"time"

	"afalstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EditRecordDTO represents the database structure for persisting edit records.
// Rows are insert-only; there is no update or delete path.
type EditRecordDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason         string    `gorm:"type:text;not null"`
	Diff           string    `gorm:"type:jsonb;not null"`
	ActorTimeZone  string    `gorm:"type:varchar(64)"`
	ActorUserAgent string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for edit record entities.
func (EditRecordDTO) TableName() string {
	return "order_edit_records"
}

// fromDomain converts an edit record to its database representation.
func fromDomain(record *order.EditRecord) EditRecordDTO {
	return EditRecordDTO{
		ID:             record.ID().Bytes(),
		OrderID:        record.OrderID().Bytes(),
		Reason:         record.Reason(),
		Diff:           record.Diff(),
		ActorTimeZone:  record.ActorTimeZone(),
		ActorUserAgent: record.ActorUserAgent(),
		CreatedAt:      record.CreatedAt(),
	}
}
