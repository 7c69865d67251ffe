package models

import "time"

// Account is the login part of a driver.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsStaff      bool      `json:"is_staff"`
	DateJoined   time.Time `json:"date_joined"`
}

// FullName falls back to the username when no name was given.
func (a Account) FullName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	}
	return a.Username
}

type Driver struct {
	ID            int64    `json:"id"`
	Account       Account  `json:"account"`
	LicenseNumber string   `json:"license_number"`
	Cars          []CarRef `json:"cars,omitempty"`
}

// DriverRef is the short form of a driver listed on a car page.
type DriverRef struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type DriverList struct {
	Items []*Driver `json:"items"`
	Count int       `json:"count"`
}
