package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taxiservice/pkg/models"
)

func TestStatsText(t *testing.T) {
	txt := StatsText(&models.Stats{Drivers: 3, Cars: 2, Manufacturers: 1})
	assert.Contains(t, txt, "Drivers: 3")
	assert.Contains(t, txt, "Cars: 2")
	assert.Contains(t, txt, "Manufacturers: 1")
}

func TestDriversText(t *testing.T) {
	list := &models.DriverList{
		Items: []*models.Driver{{
			ID:            7,
			Account:       models.Account{Username: "<alice>", FirstName: "Alice"},
			LicenseNumber: "ABC12345",
		}},
		Count: 12,
	}

	txt := DriversText(list)
	assert.Contains(t, txt, "(1 of 12)")
	assert.Contains(t, txt, "#7 &lt;alice&gt; (Alice) 🪪 ABC12345")
	assert.NotContains(t, txt, "<alice>")

	assert.Equal(t, emptyText, DriversText(&models.DriverList{}))
}

func TestCarsText(t *testing.T) {
	list := &models.CarList{
		Items: []*models.Car{
			{ID: 1, Model: "Camry", Manufacturer: &models.Manufacturer{Name: "Toyota"}, Drivers: []models.DriverRef{{ID: 1}, {ID: 2}}},
			{ID: 2, Model: "X5"},
		},
		Count: 2,
	}

	txt := CarsText(list)
	assert.Contains(t, txt, "<b>🚗 Cars</b> (2)")
	assert.Contains(t, txt, "#1 Camry (Toyota) 👥 2")
	assert.Contains(t, txt, "#2 X5 👥 0")
}

func TestManufacturersText(t *testing.T) {
	txt := ManufacturersText(&models.ManufacturerList{
		Items: []*models.Manufacturer{{ID: 4, Name: "Lada & Co", Country: "Russia"}},
		Count: 1,
	})
	assert.Contains(t, txt, "#4 Lada &amp; Co, Russia")
	assert.Equal(t, emptyText, ManufacturersText(&models.ManufacturerList{}))
}
