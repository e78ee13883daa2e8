package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// Templates are addressed by their position in the list.

func (c *GongClient) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var respData models.TemplateList

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&respData).
		SetError(&models.ErrorResponse{}).
		Get("/api/templates")

	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if err := checkResponse("list templates", resp); err != nil {
		return nil, err
	}

	templates := []models.Template(respData)
	for i := range templates {
		for j := range templates[i].Alarms {
			a := &templates[i].Alarms[j]
			a.Days = c.Config.DayBase.FromWire(a.Days)
		}
	}
	return templates, nil
}

func (c *GongClient) CreateTemplate(ctx context.Context, tpl models.Template) error {
	wire := models.Template{
		Name:     tpl.Name,
		Duration: tpl.Duration,
		Alarms:   make([]models.TemplateAlarm, 0, len(tpl.Alarms)),
	}
	for _, a := range tpl.Alarms {
		wire.Alarms = append(wire.Alarms, models.TemplateAlarm{
			Time: a.Time,
			Days: c.Config.DayBase.ToWire(a.Days),
		})
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(wire).
		SetError(&models.ErrorResponse{}).
		Post("/api/templates")

	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return checkResponse("create template", resp)
}

func (c *GongClient) DeleteTemplate(ctx context.Context, index int) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("index", strconv.Itoa(index)).
		SetError(&models.ErrorResponse{}).
		Delete("/api/templates/{index}")

	if err != nil {
		return fmt.Errorf("delete template %d: %w", index, err)
	}
	return checkResponse(fmt.Sprintf("delete template %d", index), resp)
}

// ApplyTemplate replaces the device's alarms with the template's.
func (c *GongClient) ApplyTemplate(ctx context.Context, index int) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("index", strconv.Itoa(index)).
		SetError(&models.ErrorResponse{}).
		Post("/api/templates/{index}/apply")

	if err != nil {
		return fmt.Errorf("apply template %d: %w", index, err)
	}
	return checkResponse(fmt.Sprintf("apply template %d", index), resp)
}
