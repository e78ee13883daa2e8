package client

import (
	"context"
	"fmt"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// PushSettings sends the local settings mirror to the device.
func (c *GongClient) PushSettings(ctx context.Context, s models.Settings) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(s).
		SetError(&models.ErrorResponse{}).
		Post("/api/settings")

	if err != nil {
		return fmt.Errorf("push settings: %w", err)
	}
	return checkResponse("push settings", resp)
}

// Trigger sounds the gong immediately, independent of the schedule.
func (c *GongClient) Trigger(ctx context.Context, payload models.TriggerPayload) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(&models.ErrorResponse{}).
		Post("/api/trigger")

	if err != nil {
		return fmt.Errorf("trigger: %w", err)
	}
	return checkResponse("trigger", resp)
}
