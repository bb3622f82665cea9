package courier

// CityMapping links our city name to a courier partner's city code.
// Lookups are exact: an unmapped city refuses the booking rather than
// guessing a nearby match.
type CityMapping struct {
	CourierType     Type
	CityName        string
	CourierCityCode string
	CourierCityName string
}
