package client

import (
	"context"
	"fmt"
)

// SetWiFi stores new station credentials on the ESP32. The firmware takes a
// form post and reboots once the file is written.
func (c *GongClient) SetWiFi(ctx context.Context, ssid, pass string) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"ssid": ssid,
			"pass": pass,
		}).
		Post("/api/wifi")

	if err != nil {
		return fmt.Errorf("set wifi: %w", err)
	}
	return checkResponse("set wifi", resp)
}
