// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary values are integer minor units; subtotal and total are never
// stored, they derive from the line rows.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status      int       `gorm:"type:int;not null;index"`
	EditVersion int       `gorm:"type:int;not null"`

	CourierType    string     `gorm:"type:varchar(64);not null"`
	TrackingNumber *string    `gorm:"type:varchar(128)"`
	BookedAt       *time.Time `gorm:""`

	CustomerName    string `gorm:"type:varchar(255);not null"`
	CustomerPhone   string `gorm:"type:varchar(64);not null"`
	ShippingAddress string `gorm:"type:text;not null"`
	City            string `gorm:"type:varchar(128);not null"`
	Notes           string `gorm:"type:text"`

	ShippingAmount int64  `gorm:"type:bigint;not null"`
	DiscountTotal  int64  `gorm:"type:bigint;not null"`
	PromoName      string `gorm:"type:varchar(128)"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents the database structure for persisting order lines.
// The variant is unique per order, enforced by a composite unique index.
type OrderLineDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_variant"`
	VariantID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_variant"`
	Qty             int       `gorm:"type:int;not null"`
	UnitPrice       int64     `gorm:"type:bigint;not null"`
	ReturnCondition int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))

	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:              line.ID().Bytes(),
			OrderID:         orderID,
			VariantID:       line.VariantID().Bytes(),
			Qty:             line.Qty(),
			UnitPrice:       line.UnitPrice(),
			ReturnCondition: int(line.ReturnCondition()),
		})
	}

	customer := aggregate.Customer()
	return OrderDTO{
		ID:              orderID,
		Status:          int(aggregate.Status()),
		EditVersion:     aggregate.EditVersion(),
		CourierType:     aggregate.CourierType().String(),
		TrackingNumber:  aggregate.TrackingNumber(),
		BookedAt:        aggregate.BookedAt(),
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		ShippingAddress: customer.Address,
		City:            customer.City,
		Notes:           customer.Notes,
		ShippingAmount:  aggregate.ShippingAmount(),
		DiscountTotal:   aggregate.DiscountTotal(),
		PromoName:       aggregate.PromoName(),
		Lines:           lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		order.Status(dto.Status),
		dto.EditVersion,
		courier.Type(dto.CourierType),
		dto.TrackingNumber,
		dto.BookedAt,
		order.Customer{
			Name:    dto.CustomerName,
			Phone:   dto.CustomerPhone,
			Address: dto.ShippingAddress,
			City:    dto.City,
			Notes:   dto.Notes,
		},
		dto.ShippingAmount,
		dto.DiscountTotal,
		dto.PromoName,
		lines,
	)
}

// lineToDomain converts a line DTO to a domain entity.
func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(id, variantID, dto.Qty, dto.UnitPrice, order.ReturnCondition(dto.ReturnCondition))
}
