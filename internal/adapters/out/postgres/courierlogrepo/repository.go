package courierlogrepo

import (
	"context"

	"afalstore/internal/core/domain/model/courier"

	"gorm.io/gorm"
)

// GormCourierLogRepository implements CourierLogRepository using GORM.
//
// It runs on the root database connection, never on a unit of work: the log
// documents external calls that really happened and must survive even when
// the surrounding order transaction rolls back.
type GormCourierLogRepository struct {
	db *gorm.DB
}

// NewGormCourierLogRepository creates a new GORM courier log repository.
func NewGormCourierLogRepository(db *gorm.DB) *GormCourierLogRepository {
	return &GormCourierLogRepository{db: db}
}

// Add appends a courier API log entry.
func (r *GormCourierLogRepository) Add(ctx context.Context, entry *courier.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
