package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// DFPlayer commands. The device takes its arguments as query parameters and
// no body.

func (c *GongClient) Play(ctx context.Context) (models.StatusResponse, error) {
	return c.audioCommand(ctx, "play", c.HTTP.R())
}

func (c *GongClient) Stop(ctx context.Context) (models.StatusResponse, error) {
	return c.audioCommand(ctx, "stop", c.HTTP.R())
}

// PlayTrack plays track num from the SD card (1-based).
func (c *GongClient) PlayTrack(ctx context.Context, num int) (models.StatusResponse, error) {
	req := c.HTTP.R().SetQueryParam("num", strconv.Itoa(num))
	return c.audioCommand(ctx, "track", req)
}

// SetVolume sets the player volume. The device clamps it to 0..30.
func (c *GongClient) SetVolume(ctx context.Context, value int) (models.StatusResponse, error) {
	req := c.HTTP.R().SetQueryParam("value", strconv.Itoa(value))
	return c.audioCommand(ctx, "volume", req)
}

func (c *GongClient) audioCommand(ctx context.Context, name string, req *resty.Request) (models.StatusResponse, error) {
	var respData models.StatusResponse
	op := "audio " + name

	resp, err := req.
		SetContext(ctx).
		SetResult(&respData).
		SetError(&models.ErrorResponse{}).
		Post("/api/audio/" + name)

	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkResponse(op, resp); err != nil {
		return models.StatusResponse{}, err
	}
	return respData, nil
}
