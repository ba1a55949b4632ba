package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Auth modes for the spreadsheet connector.
const (
	// AuthModeServiceAccount reads through the Sheets API with
	// service-account credentials.
	AuthModeServiceAccount = "service_account"
	// AuthModePublic reads the unauthenticated CSV export of a sheet
	// shared as "anyone with the link".
	AuthModePublic = "public"
)

// Config holds all runtime settings for the dashboard service.
type Config struct {
	// Spreadsheet source.
	SheetID         string `mapstructure:"sheet_id"`
	Worksheet       string `mapstructure:"worksheet"`
	AuthMode        string `mapstructure:"auth_mode"`
	CredentialsFile string `mapstructure:"credentials_file"`
	// BaseURL overrides the spreadsheet endpoint; tests point it at a
	// local server.
	BaseURL string `mapstructure:"base_url"`

	// Serving.
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	Port               int           `mapstructure:"port"`
	ShowFallbackNotice bool          `mapstructure:"show_fallback_notice"`
	LogLevel           string        `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and an optional YAML
// file. Environment variables take precedence over file values. path names
// an explicit config file; when empty, config.yaml is searched for in the
// working directory and $HOME/.ezfinance, and is not required to exist.
//
// Environment variables:
//   - EZF_SHEET_ID
//   - EZF_WORKSHEET
//   - EZF_AUTH_MODE (service_account or public)
//   - EZF_CREDENTIALS_FILE (service_account mode)
//   - EZF_BASE_URL (optional, defaults to the Google endpoint)
//   - EZF_CACHE_TTL (e.g. 600s)
//   - EZF_PORT
//   - EZF_SHOW_FALLBACK_NOTICE
//   - EZF_LOG_LEVEL
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("sheet_id", "")
	v.SetDefault("worksheet", "BankRates")
	v.SetDefault("auth_mode", AuthModePublic)
	v.SetDefault("credentials_file", "")
	v.SetDefault("base_url", "")
	v.SetDefault("cache_ttl", "600s")
	v.SetDefault("port", 8080)
	v.SetDefault("show_fallback_notice", false)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ezfinance")
		// Config file is optional; env and defaults cover everything.
		_ = v.ReadInConfig()
	}

	v.BindEnv("sheet_id", "EZF_SHEET_ID")
	v.BindEnv("worksheet", "EZF_WORKSHEET")
	v.BindEnv("auth_mode", "EZF_AUTH_MODE")
	v.BindEnv("credentials_file", "EZF_CREDENTIALS_FILE")
	v.BindEnv("base_url", "EZF_BASE_URL")
	v.BindEnv("cache_ttl", "EZF_CACHE_TTL")
	v.BindEnv("port", "EZF_PORT")
	v.BindEnv("show_fallback_notice", "EZF_SHOW_FALLBACK_NOTICE")
	v.BindEnv("log_level", "EZF_LOG_LEVEL")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail obscurely at request
// time. A missing sheet_id is deliberately legal: the service boots and
// serves fallback rows until a source is configured.
func (c *Config) Validate() error {
	var problems []string

	switch c.AuthMode {
	case AuthModeServiceAccount, AuthModePublic:
	default:
		problems = append(problems, fmt.Sprintf("auth_mode must be %q or %q, got %q",
			AuthModeServiceAccount, AuthModePublic, c.AuthMode))
	}
	if c.AuthMode == AuthModeServiceAccount && c.CredentialsFile == "" {
		problems = append(problems, "credentials_file is required in service_account mode")
	}
	if c.CacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("cache_ttl must be positive, got %s", c.CacheTTL))
	}
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port must be in 1..65535, got %d", c.Port))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log_level %q is not a valid level", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
