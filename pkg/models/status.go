package models

// StatusResponse covers the small acknowledgement bodies returned by
// mutations and by the DFPlayer endpoints on the ESP32.
type StatusResponse struct {
	Status string `json:"status"`
	ID     int    `json:"id,omitempty"`
	Volume *int   `json:"volume,omitempty"` // clamped value applied by the device
	Track  int    `json:"track,omitempty"`
}

// ErrorResponse is the {"error": "..."} body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
