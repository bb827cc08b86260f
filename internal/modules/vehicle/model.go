// README: Vehicle tariff classes and their road rate.
package vehicle

// Class is one tariff category. ID matches the class columns of the toll rate table.
type Class struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	RatePerKm float64 `yaml:"rate_per_km"`
}

// DefaultClasses are the Malaysian highway toll classes.
var DefaultClasses = []Class{
	{ID: "1", Name: "Class 1: Private Cars", RatePerKm: 0.15},
	{ID: "2", Name: "Class 2: Vehicles with 2 axles and 3 or 4 wheels", RatePerKm: 0.25},
	{ID: "3", Name: "Class 3: Vehicles with 3 or more axles", RatePerKm: 0.40},
	{ID: "4", Name: "Class 4: Taxis", RatePerKm: 0.15},
	{ID: "5", Name: "Class 5: Buses", RatePerKm: 0.30},
}
