package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// ListAlarms fetches every alarm. Days are returned in canonical numbering.
func (c *GongClient) ListAlarms(ctx context.Context) ([]models.Alarm, error) {
	var respData models.AlarmList

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&respData).
		SetError(&models.ErrorResponse{}).
		Get("/api/alarms")

	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	if err := checkResponse("list alarms", resp); err != nil {
		return nil, err
	}

	alarms := []models.Alarm(respData)
	for i := range alarms {
		alarms[i].Days = c.Config.DayBase.FromWire(alarms[i].Days)
	}
	return alarms, nil
}

// CreateAlarm posts a new alarm. The Flask backend echoes the stored alarm,
// older backends only return its id.
func (c *GongClient) CreateAlarm(ctx context.Context, in models.AlarmInput) (*models.Alarm, error) {
	var created models.Alarm

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(c.toWire(in)).
		SetResult(&created).
		SetError(&models.ErrorResponse{}).
		Post("/api/alarms")

	if err != nil {
		return nil, fmt.Errorf("create alarm: %w", err)
	}
	if err := checkResponse("create alarm", resp); err != nil {
		return nil, err
	}

	created.Days = c.Config.DayBase.FromWire(created.Days)
	return &created, nil
}

// UpdateAlarm replaces every field of alarm id.
func (c *GongClient) UpdateAlarm(ctx context.Context, id int, in models.AlarmInput) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetBody(c.toWire(in)).
		SetError(&models.ErrorResponse{}).
		Put("/api/alarms/{id}")

	if err != nil {
		return fmt.Errorf("update alarm %d: %w", id, err)
	}
	return checkResponse(fmt.Sprintf("update alarm %d", id), resp)
}

func (c *GongClient) DeleteAlarm(ctx context.Context, id int) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetError(&models.ErrorResponse{}).
		Delete("/api/alarms/{id}")

	if err != nil {
		return fmt.Errorf("delete alarm %d: %w", id, err)
	}
	return checkResponse(fmt.Sprintf("delete alarm %d", id), resp)
}

func (c *GongClient) toWire(in models.AlarmInput) models.AlarmInput {
	in.Days = c.Config.DayBase.ToWire(in.Days)
	return in
}
