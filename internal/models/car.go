// internal/models/car.go
package models

// Car is one entry of the caller-supplied inventory snapshot. The service
// never mutates or persists inventory; it only filters it per request.
type Car struct {
	ID              string  `json:"id"`
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Price           float64 `json:"price"`
	BodyStyle       string  `json:"body_style,omitempty"`
	SeatingCapacity int     `json:"seating_capacity,omitempty"`
	Drivetrain      string  `json:"drivetrain,omitempty"`
	FuelConsumption string  `json:"fuel_consumption,omitempty"`
	Category        string  `json:"category,omitempty"`
}
