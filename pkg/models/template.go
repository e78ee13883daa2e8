package models

import (
	"bytes"
	"encoding/json"
)

// Template is a named bundle of alarms that can be applied in one step.
// Applying a template replaces the existing alarms on the device.
type Template struct {
	Name     string          `json:"name" yaml:"name"`
	Duration int             `json:"duration" yaml:"duration"` // days
	Alarms   []TemplateAlarm `json:"alarms" yaml:"alarms"`
}

type TemplateAlarm struct {
	Time string `json:"time" yaml:"time"`
	Days []int  `json:"days" yaml:"days"`
}

// TemplateList accepts both {"templates": [...]} and a bare array.
type TemplateList []Template

func (l *TemplateList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Template
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var wrapped struct {
		Templates []Template `json:"templates"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Templates
	return nil
}
