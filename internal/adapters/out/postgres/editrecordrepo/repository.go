package editrecordrepo

import (
	"context"

	"afalstore/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormEditRecordRepository implements EditRecordRepository using GORM.
// There is deliberately no update or delete method.
type GormEditRecordRepository struct {
	db *gorm.DB
}

// NewGormEditRecordRepository creates a new GORM edit record repository.
func NewGormEditRecordRepository(db *gorm.DB) *GormEditRecordRepository {
	return &GormEditRecordRepository{db: db}
}

// Add appends an edit record.
func (r *GormEditRecordRepository) Add(ctx context.Context, record *order.EditRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
