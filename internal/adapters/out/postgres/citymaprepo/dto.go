// Package citymaprepo reads courier city mappings.
package citymaprepo

import "afalstore/internal/core/domain/model/courier"

// CityMappingDTO represents the database structure for courier city mappings.
// The pair (courier_type, city_name) is unique; lookups are exact matches.
type CityMappingDTO struct {
	CourierType     string `gorm:"type:varchar(64);primaryKey"`
	CityName        string `gorm:"type:varchar(128);primaryKey"`
	CourierCityCode string `gorm:"type:varchar(64);not null"`
	CourierCityName string `gorm:"type:varchar(128)"`
}

// TableName specifies the database table name for city mapping entities.
func (CityMappingDTO) TableName() string {
	return "courier_city_maps"
}

// toDomain converts a city mapping DTO to the domain value.
func toDomain(dto CityMappingDTO) courier.CityMapping {
	return courier.CityMapping{
		CourierType:     courier.Type(dto.CourierType),
		CityName:        dto.CityName,
		CourierCityCode: dto.CourierCityCode,
		CourierCityName: dto.CourierCityName,
	}
}
