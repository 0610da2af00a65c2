// Package config resolves heartdash settings from defaults, an optional
// .heartdash.yaml file, HEARTDASH_* environment variables and flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values, shared by viper defaults and flag definitions.
const (
	DefaultAddr     = "localhost:8080"
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/app.log" // serve only
	DefaultTheme    = "macarons"
	DefaultYMin     = 40.0
	DefaultYMax     = 150.0
	LocalTimezone   = "Local"
)

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

// Output formats for the series and summary commands.
const (
	TextOut = "text"
	JSONOut = "json"
	CSVOut  = "csv"
)

// Config holds the validated runtime configuration.
type Config struct {
	Dataset    string `mapstructure:"dataset"`
	Date       string `mapstructure:"date"`
	Timezone   string `mapstructure:"timezone" validate:"required"`
	Output     string `mapstructure:"output" validate:"oneof=text json csv"`
	OutputFile string `mapstructure:"output-file"`
	Addr       string `mapstructure:"addr" validate:"required"`
	Open       bool   `mapstructure:"open"`
	LogLevel   string `mapstructure:"log-level" validate:"oneof=trace debug info warn error"`
	LogFile    string `mapstructure:"log-file"`
	Color      string `mapstructure:"color" validate:"oneof=auto yes no"`
	Chart      Chart  `mapstructure:"chart"`

	location *time.Location
}

// Chart holds dashboard chart settings.
type Chart struct {
	YMin  float64 `mapstructure:"y-min"`
	YMax  float64 `mapstructure:"y-max" validate:"gtfield=YMin"`
	Theme string  `mapstructure:"theme" validate:"required"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "")
	v.SetDefault("date", "all")
	v.SetDefault("timezone", LocalTimezone)
	v.SetDefault("output", TextOut)
	v.SetDefault("output-file", "")
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("open", false)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("color", "auto")
	v.SetDefault("chart.y-min", DefaultYMin)
	v.SetDefault("chart.y-max", DefaultYMax)
	v.SetDefault("chart.theme", DefaultTheme)
}

// ConfigureSources points v at the config file and environment.
func ConfigureSources(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".heartdash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	configureEnv(v)
}

func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("HEARTDASH")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	// log-file has no default, so bind it for Unmarshal to see the variable.
	_ = v.BindEnv("log-file")
}

// ServeLogFile is the log file for the dashboard server: the configured
// log-file if any source set it, DefaultLogFile otherwise. Other commands
// log to stderr only unless log-file is set.
func ServeLogFile(v *viper.Viper) string {
	if v.IsSet("log-file") {
		return v.GetString("log-file")
	}
	return DefaultLogFile
}

// Load reads the config file if there is one, unmarshals v and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and resolves the time zone.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(c.Output)
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Color = strings.ToLower(c.Color)

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location is the zone used for timestamp labels.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func loadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, LocalTimezone) {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
