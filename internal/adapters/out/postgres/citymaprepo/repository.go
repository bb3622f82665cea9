package citymaprepo

import (
	"context"
	"errors"
	"fmt"

	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCityMappingStore implements CityMappingStore using GORM.
type GormCityMappingStore struct {
	db *gorm.DB
}

// NewGormCityMappingStore creates a new GORM city mapping store.
func NewGormCityMappingStore(db *gorm.DB) *GormCityMappingStore {
	return &GormCityMappingStore{db: db}
}

// Lookup returns the mapping for (courierType, cityName). A missing mapping
// yields an error unwrapping to errs.ErrObjectNotFound.
func (r *GormCityMappingStore) Lookup(
	ctx context.Context,
	courierType courier.Type,
	cityName string,
) (courier.CityMapping, error) {
	if err := courierType.Validate(); err != nil {
		return courier.CityMapping{}, err
	}
	if cityName == "" {
		return courier.CityMapping{}, errs.NewValueIsRequiredError("cityName")
	}

	var dto CityMappingDTO
	err := r.db.WithContext(ctx).
		First(&dto, "courier_type = ? AND city_name = ?", courierType.String(), cityName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return courier.CityMapping{}, errs.NewObjectNotFoundError("city mapping",
				fmt.Sprintf("%s/%s", courierType, cityName))
		}
		return courier.CityMapping{}, err
	}

	return toDomain(dto), nil
}
