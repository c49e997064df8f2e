package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	KeyBaseURL      = "server.base_url"
	KeyProfilesPath = "profiles.path"
	KeySecretsPath  = "secrets.path"
	KeyPassDir      = "secrets.pass_dir"
	KeyPollInterval = "poll.interval"
	KeyStalePolls   = "cache.stale_polls"
	KeyAckDuration  = "scan.ack_duration"
	KeySettleDelay  = "scan.settle_delay"
	KeyHTTPTimeout  = "http.timeout"
	KeyLogLevel     = "log.level"

	configDir  = ".invscan"
	configName = "config"
)

type Config struct {
	BaseURL string
	// BaseURLPinned is set when INVSCAN_BASE_URL overrides every profile.
	BaseURLPinned bool
	Profile       string
	Token         string
	ProfilesPath  string
	SecretsPath   string
	// PassDir overrides PASSWORD_STORE_DIR for the pass backend.
	PassDir      string
	PollInterval time.Duration
	StalePolls   int
	AckDuration  time.Duration
	SettleDelay  time.Duration
	HTTPTimeout  time.Duration
	LogLevel     string
}

// StaleAfter is how long an unconfirmed local edit survives before server state wins.
func (c Config) StaleAfter() time.Duration {
	return time.Duration(c.StalePolls) * c.PollInterval
}

func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive", KeyPollInterval)
	}
	if c.StalePolls <= 0 {
		return fmt.Errorf("%s must be positive", KeyStalePolls)
	}
	if c.AckDuration < 0 || c.SettleDelay < 0 {
		return errors.New("scan delays must not be negative")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyHTTPTimeout)
	}
	return nil
}

type envOverrides struct {
	BaseURL  string `env:"INVSCAN_BASE_URL"`
	Profile  string `env:"INVSCAN_PROFILE"`
	Token    string `env:"INVSCAN_TOKEN"`
	LogLevel string `env:"INVSCAN_LOG_LEVEL"`
}

// Load reads ~/.invscan/config.toml when present, then applies environment
// overrides. The returned viper instance carries the merged settings for
// adapters that read their own keys.
func Load(home string) (*viper.Viper, Config, error) {
	if home == "" {
		resolved, err := os.UserHomeDir()
		if err != nil {
			return nil, Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		home = resolved
	}

	v := viper.New()
	setDefaults(v, home)
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(home, configDir))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, Config{}, fmt.Errorf("parse env: %w", err)
	}
	if overrides.BaseURL != "" {
		v.Set(KeyBaseURL, overrides.BaseURL)
	}
	if overrides.LogLevel != "" {
		v.Set(KeyLogLevel, overrides.LogLevel)
	}

	cfg := Config{
		BaseURL:       strings.TrimSpace(v.GetString(KeyBaseURL)),
		BaseURLPinned: overrides.BaseURL != "",
		Profile:       strings.TrimSpace(overrides.Profile),
		Token:         strings.TrimSpace(overrides.Token),
		ProfilesPath:  expandHome(v.GetString(KeyProfilesPath), home),
		SecretsPath:   expandHome(v.GetString(KeySecretsPath), home),
		PassDir:       expandHome(v.GetString(KeyPassDir), home),
		PollInterval:  v.GetDuration(KeyPollInterval),
		StalePolls:    v.GetInt(KeyStalePolls),
		AckDuration:   v.GetDuration(KeyAckDuration),
		SettleDelay:   v.GetDuration(KeySettleDelay),
		HTTPTimeout:   v.GetDuration(KeyHTTPTimeout),
		LogLevel:      v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, Config{}, fmt.Errorf("validate config: %w", err)
	}
	v.Set(KeyProfilesPath, cfg.ProfilesPath)
	v.Set(KeySecretsPath, cfg.SecretsPath)

	return v, cfg, nil
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault(KeyBaseURL, "http://127.0.0.1:8085")
	v.SetDefault(KeyProfilesPath, filepath.Join(home, configDir, "profiles.toml"))
	v.SetDefault(KeySecretsPath, filepath.Join(home, configDir, "secrets"))
	v.SetDefault(KeyPassDir, "")
	v.SetDefault(KeyPollInterval, 3*time.Second)
	v.SetDefault(KeyStalePolls, 3)
	v.SetDefault(KeyAckDuration, 600*time.Millisecond)
	v.SetDefault(KeySettleDelay, 1200*time.Millisecond)
	v.SetDefault(KeyHTTPTimeout, 15*time.Second)
	v.SetDefault(KeyLogLevel, "info")
}

func expandHome(path string, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
