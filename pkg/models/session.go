package models

import "time"

// Session binds a browser cookie to a logged in driver.
type Session struct {
	Token     string    `json:"token"`
	DriverID  int64     `json:"driver_id"`
	Visits    int       `json:"visits"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
