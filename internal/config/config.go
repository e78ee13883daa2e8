package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

const (
	configName = ".gong-cli"
	envPrefix  = "GONG"
)

// Config is the typed view of the config file and GONG_* environment.
type Config struct {
	BaseURL       string          `mapstructure:"base_url"`
	Timeout       time.Duration   `mapstructure:"timeout"`
	ClockInterval time.Duration   `mapstructure:"clock_interval"`
	DayBase       int             `mapstructure:"day_base"`
	Locale        string          `mapstructure:"locale"`
	RequireDays   bool            `mapstructure:"require_days"`
	Log           LogConfig       `mapstructure:"log"`
	Settings      models.Settings `mapstructure:"settings"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	// A .env in the working directory seeds GONG_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gong-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	setDefaults()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// A missing file is fine; the defaults and environment still apply.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	d := models.DefaultSettings()
	viper.SetDefault("base_url", "")
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("clock_interval", time.Second)
	viper.SetDefault("day_base", 0)
	viper.SetDefault("locale", string(weekday.Russian))
	viper.SetDefault("require_days", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("settings.duration", d.Duration)
	viper.SetDefault("settings.volume", d.Volume)
	viper.SetDefault("settings.auto_sync", d.AutoSync)
	viper.SetDefault("settings.timezone", d.Timezone)
}

// Load decodes and validates the current viper state.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if _, err := weekday.ParseBase(cfg.DayBase); err != nil {
		return nil, err
	}
	if _, err := weekday.ParseLocale(cfg.Locale); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DayBaseValue returns the validated day numbering.
func (c *Config) DayBaseValue() weekday.Base {
	b, _ := weekday.ParseBase(c.DayBase)
	return b
}

func (c *Config) LocaleValue() weekday.Locale {
	l, _ := weekday.ParseLocale(c.Locale)
	return l
}

// SaveTarget remembers the device address for later commands.
func SaveTarget(baseURL string, dayBase weekday.Base) error {
	viper.Set("base_url", strings.TrimRight(baseURL, "/"))
	viper.Set("day_base", int(dayBase))
	return write()
}

// SaveSettings persists the local settings mirror.
func SaveSettings(s models.Settings) error {
	viper.Set("settings.duration", s.Duration)
	viper.Set("settings.volume", s.Volume)
	viper.Set("settings.auto_sync", s.AutoSync)
	viper.Set("settings.timezone", s.Timezone)
	return write()
}

func write() error {
	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, configName+".yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
