package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Report formats accepted by report.format and the analyze command.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"ai" yaml:"ai"`

	Server struct {
		Address     string `mapstructure:"address" yaml:"address"`
		MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
		StaticDir   string `mapstructure:"static_dir" yaml:"static_dir"`
	} `mapstructure:"server" yaml:"server"`

	Ingest struct {
		OCREnabled   bool `mapstructure:"ocr_enabled" yaml:"ocr_enabled"`
		MinPageChars int  `mapstructure:"min_page_chars" yaml:"min_page_chars"`
		OCRDPI       int  `mapstructure:"ocr_dpi" yaml:"ocr_dpi"`
	} `mapstructure:"ingest" yaml:"ingest"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// AITimeout returns the configured suggestion-service timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// InitializeConfig builds the configuration. When configFile is empty the
// standard locations are searched and a missing file is not an error.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.leak-detector")
		v.AddConfigPath(".leak-detector")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LEAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.BindEnv("ai.api_key", "LEAK_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 10)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.static_dir", "")

	v.SetDefault("ingest.ocr_enabled", true)
	v.SetDefault("ingest.min_page_chars", 10)
	v.SetDefault("ingest.ocr_dpi", 300)

	v.SetDefault("categories.file", "")

	v.SetDefault("report.format", FormatJSON)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// The suggestion call must never hold a report hostage.
	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 30 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 30, got: %d", config.AI.TimeoutSeconds)
	}

	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive, got: %d", config.Server.MaxUploadMB)
	}

	if config.Ingest.MinPageChars < 0 {
		return fmt.Errorf("ingest.min_page_chars must not be negative, got: %d", config.Ingest.MinPageChars)
	}

	if config.Ingest.OCRDPI < 72 || config.Ingest.OCRDPI > 1200 {
		return fmt.Errorf("ingest.ocr_dpi must be between 72 and 1200, got: %d", config.Ingest.OCRDPI)
	}

	if !IsReportFormat(config.Report.Format) {
		return fmt.Errorf("invalid report format: %s (must be json, csv or xlsx)", config.Report.Format)
	}

	return nil
}

// IsReportFormat reports whether f is a supported report format.
func IsReportFormat(f string) bool {
	switch f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return true
	}
	return false
}
