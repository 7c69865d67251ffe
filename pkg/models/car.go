package models

type Car struct {
	ID             int64         `json:"id"`
	Model          string        `json:"model"`
	ManufacturerID int64         `json:"manufacturer_id"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty"`
	Drivers        []DriverRef   `json:"drivers,omitempty"`
}

// HasDriver reports whether the driver is assigned to the car.
func (c *Car) HasDriver(driverID int64) bool {
	for _, d := range c.Drivers {
		if d.ID == driverID {
			return true
		}
	}
	return false
}

// CarRef is the short form of a car listed on a driver page.
type CarRef struct {
	ID           int64  `json:"id"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
}

type CarList struct {
	Items []*Car `json:"items"`
	Count int    `json:"count"`
}
