package app

import (
	"github.com/spf13/viper"
)

// BaseConfig contains the process level configuration shared by every
// command.
type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is either "text" or "json".
	LogFormat string `mapstructure:"log_format"`

	AppName string `mapstructure:"app_name"`

	// Metrics configuration across many providers
	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`

	// Arbitrary configuration for the fusion client, eg. fusion.program_id.
	// Keys are exported into the process environment so the env backed
	// configs can read them.
	AppConfig map[string]interface{} `mapstructure:"app"`
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var defaultConfig = BaseConfig{
	LogLevel:  "info",
	LogFormat: LogFormatText,
	AppName:   "fusion-cli",
}

func init() {
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("log_format", "LOG_FORMAT")

	_ = viper.BindEnv("app_name", "APP_NAME")

	_ = viper.BindEnv("new_relic_license_key", "NEW_RELIC_LICENSE_KEY")
}
