package models

import (
	"bytes"
	"encoding/json"
)

// Alarm is a scheduled gong activation as stored by the backend.
// Days are canonical (0 = Monday) once they have passed through the client.
type Alarm struct {
	ID       int    `json:"id" yaml:"id,omitempty"`
	Time     string `json:"time" yaml:"time"` // HH:MM
	Days     []int  `json:"days" yaml:"days"`
	Duration int    `json:"duration" yaml:"duration"` // seconds
	Active   bool   `json:"active" yaml:"active"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
}

// AlarmInput is the body for POST /api/alarms and PUT /api/alarms/:id
type AlarmInput struct {
	Time     string `json:"time"`
	Days     []int  `json:"days"`
	Duration int    `json:"duration"`
	Active   bool   `json:"active"`
	Label    string `json:"label,omitempty"`
}

// AlarmList decodes GET /api/alarms. The Flask backend wraps the list as
// {"alarms": [...]}, the older one returns a bare array.
type AlarmList []Alarm

func (l *AlarmList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Alarm
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var wrapped struct {
		Alarms []Alarm `json:"alarms"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Alarms
	return nil
}
