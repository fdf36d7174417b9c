package model

// LocationInfo is the reverse-geocoded view of a coordinate pair.
// All fields fail open to "Unknown" placeholders.
type LocationInfo struct {
	DisplayName string `json:"display_name"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Postcode    string `json:"postcode"`
	District    string `json:"district"`
}
