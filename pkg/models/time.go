package models

// ServerTime is the GET /api/time response.
// backend.py sends "date" (dd.mm.yyyy), app.py sends "iso" instead.
type ServerTime struct {
	Time string `json:"time"`
	Date string `json:"date,omitempty"`
	ISO  string `json:"iso,omitempty"`
}
