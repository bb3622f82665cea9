// Package courierlogrepo persists the append-only courier API audit log.
package courierlogrepo

import (
	"time"

	"afalstore/internal/core/domain/model/courier"

	"github.com/google/uuid"
)

// LogEntryDTO represents the database structure for courier API log entries.
type LogEntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierType string    `gorm:"type:varchar(64);not null;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint    string    `gorm:"type:varchar(128);not null"`
	Request     string    `gorm:"type:jsonb"`
	Response    string    `gorm:"type:jsonb"`
	Success     bool      `gorm:"not null;index"`
	ErrorText   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for courier log entries.
func (LogEntryDTO) TableName() string {
	return "courier_api_logs"
}

// fromDomain converts a log entry to its database representation.
func fromDomain(entry *courier.LogEntry) LogEntryDTO {
	return LogEntryDTO{
		ID:          entry.ID().Bytes(),
		CourierType: entry.CourierType().String(),
		OrderID:     entry.OrderID().Bytes(),
		Endpoint:    entry.Endpoint(),
		Request:     entry.Request(),
		Response:    entry.Response(),
		Success:     entry.Success(),
		ErrorText:   entry.ErrorText(),
		CreatedAt:   entry.CreatedAt(),
	}
}
