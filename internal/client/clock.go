package client

import (
	"context"
	"fmt"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// GetTime reads the device clock.
func (c *GongClient) GetTime(ctx context.Context) (models.ServerTime, error) {
	var respData models.ServerTime

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&respData).
		SetError(&models.ErrorResponse{}).
		Get("/api/time")

	if err != nil {
		return models.ServerTime{}, fmt.Errorf("get time: %w", err)
	}
	if err := checkResponse("get time", resp); err != nil {
		return models.ServerTime{}, err
	}
	return respData, nil
}
