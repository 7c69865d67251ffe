package forms

import (
	"strconv"
	"strings"
)

type Manufacturer struct {
	Name    string `form:"name" validate:"required,max=255"`
	Country string `form:"country" validate:"required,max=255"`
}

func (f Manufacturer) Clean() (Manufacturer, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Country = strings.TrimSpace(f.Country)

	errs := Errors{}
	collect(f, errs)
	if errs.Any() {
		return Manufacturer{}, NewValidationError(errs)
	}
	return f, nil
}

// Car keeps the raw select values so a bad choice can be shown back to the user.
type Car struct {
	Model        string   `form:"model" validate:"required,max=255"`
	Manufacturer string   `form:"manufacturer" validate:"required,number"`
	Drivers      []string `form:"drivers" validate:"dive,number"`
}

type CarData struct {
	Model          string
	ManufacturerID int64
	DriverIDs      []int64
}

func (f Car) Clean() (CarData, error) {
	f.Model = strings.TrimSpace(f.Model)
	f.Manufacturer = strings.TrimSpace(f.Manufacturer)

	errs := Errors{}
	collect(f, errs)
	if errs.Any() {
		return CarData{}, NewValidationError(errs)
	}

	out := CarData{Model: f.Model}
	out.ManufacturerID, _ = strconv.ParseInt(f.Manufacturer, 10, 64)

	seen := make(map[int64]bool, len(f.Drivers))
	for _, raw := range f.Drivers {
		id, _ := strconv.ParseInt(raw, 10, 64)
		if seen[id] {
			continue
		}
		seen[id] = true
		out.DriverIDs = append(out.DriverIDs, id)
	}
	return out, nil
}

// Selected reports whether the select option id was submitted.
func (f Car) Selected(id int64) bool {
	s := strconv.FormatInt(id, 10)
	for _, d := range f.Drivers {
		if d == s {
			return true
		}
	}
	return false
}

type Login struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func (f Login) Clean() (Login, error) {
	f.Username = strings.TrimSpace(f.Username)

	errs := Errors{}
	collect(f, errs)
	if errs.Any() {
		return Login{}, NewValidationError(errs)
	}
	return f, nil
}
