package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderAlreadyExists is returned when Add hits the primary key or the
// per-order variant uniqueness constraint.
var ErrOrderAlreadyExists = errors.New("order already exists")

const uniqueViolationCode = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: %s", ErrOrderAlreadyExists, aggregate.ID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database without touching the edit
// version gate. Lines removed from the aggregate are deleted from the line
// table, added and amended ones are upserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.deleteRemovedLines(ctx, dto); err != nil {
		return err
	}

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateWithVersion saves the order with a compare-and-swap on edit_version.
// The UPDATE carries "WHERE edit_version = expectedVersion"; zero affected
// rows means another editor got there first, surfaced as a version error and
// leaving the row untouched.
func (r *GormOrderRepository) UpdateWithVersion(
	ctx context.Context,
	aggregate *order.Order,
	expectedVersion int,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND edit_version = ?", dto.ID, expectedVersion).
		Select("*").Omit("Lines", "id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("editVersion",
			fmt.Errorf("expected version %d is no longer current", expectedVersion))
	}

	if err := r.deleteRemovedLines(ctx, dto); err != nil {
		return err
	}
	for i := range dto.Lines {
		line := dto.Lines[i]
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&line).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order holding a FOR UPDATE row lock for the rest
// of the transaction, serializing concurrent writers on the same order.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Preload("Lines")
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "orders"}})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// deleteRemovedLines drops line rows no longer present on the aggregate.
func (r *GormOrderRepository) deleteRemovedLines(ctx context.Context, dto OrderDTO) error {
	keep := make([]uuid.UUID, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		keep = append(keep, line.ID)
	}

	tx := r.db.WithContext(ctx).Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		tx = tx.Where("id NOT IN ?", keep)
	}
	return tx.Delete(&OrderLineDTO{}).Error
}
