package models

// Settings is the client-side mirror pushed with POST /api/settings.
// It is never read back from the device.
type Settings struct {
	Duration int    `json:"duration" mapstructure:"duration" yaml:"duration"` // seconds
	Volume   int    `json:"volume" mapstructure:"volume" yaml:"volume"`
	AutoSync bool   `json:"autoSync" mapstructure:"auto_sync" yaml:"auto_sync"`
	Timezone string `json:"timezone" mapstructure:"timezone" yaml:"timezone"`
}

// DefaultSettings matches the values the web UI starts with.
func DefaultSettings() Settings {
	return Settings{
		Duration: 30,
		Volume:   20,
		AutoSync: true,
		Timezone: "UTC+3",
	}
}

// TriggerPayload is the body for POST /api/trigger
type TriggerPayload struct {
	Duration int `json:"duration"`
	Volume   int `json:"volume"`
}
