package models

type Manufacturer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type ManufacturerList struct {
	Items []*Manufacturer `json:"items"`
	Count int             `json:"count"`
}
