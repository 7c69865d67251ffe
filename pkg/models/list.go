package models

type ListRequest struct {
	Search string
	Page   int
	Limit  int
}

// Offset is zero based; Page starts at 1.
func (r ListRequest) Offset() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	return (r.Page - 1) * r.Limit
}

type Stats struct {
	Drivers       int `json:"drivers"`
	Cars          int `json:"cars"`
	Manufacturers int `json:"manufacturers"`
}
