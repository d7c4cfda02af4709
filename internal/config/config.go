// Package config loads gateway configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every externally supplied knob the gateway consumes.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `mapstructure:"tls_cert_file"`
	TLSKeyFile  string `mapstructure:"tls_key_file"`

	// AllowedOrigins is the origin allow-list. Matching is by substring;
	// an empty list disables the origin check.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// RateLimitInterval and RateLimitMax define the fixed submission
	// window per client identifier.
	RateLimitInterval time.Duration `mapstructure:"rate_limit_interval"`
	RateLimitMax      int           `mapstructure:"rate_limit_max"`

	// DuplicateHistory and DuplicateDebounce configure the per-student
	// duplicate guard.
	DuplicateHistory  time.Duration `mapstructure:"duplicate_history"`
	DuplicateDebounce time.Duration `mapstructure:"duplicate_debounce"`

	// GlobalRatePerSecond caps aggregate ingress across all clients.
	// Zero disables the cap.
	GlobalRatePerSecond float64 `mapstructure:"global_rate_per_second"`

	// TelegramBotToken and TelegramChatID are the notifier credentials.
	// Leaving either empty runs the notifier in demo mode.
	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	TelegramChatID   string `mapstructure:"telegram_chat_id"`

	// NotifierTimeout bounds one outbound delivery attempt.
	NotifierTimeout time.Duration `mapstructure:"notifier_timeout"`

	// RosterPath overrides the embedded student roster.
	RosterPath string `mapstructure:"roster_path"`

	// AuditDBPath enables the SQLite audit trail when set.
	AuditDBPath string `mapstructure:"audit_db_path"`
}

// Default returns the configuration used when nothing is supplied.
func Default() Config {
	return Config{
		Addr:                ":8080",
		RateLimitInterval:   time.Minute,
		RateLimitMax:        3,
		DuplicateHistory:    5 * time.Minute,
		DuplicateDebounce:   time.Minute,
		GlobalRatePerSecond: 25,
		NotifierTimeout:     10 * time.Second,
	}
}

// Load reads gateway.yaml from the working directory or /etc/reclamation,
// then applies RECLAMATION_* environment overrides. A missing config file is
// not an error; the defaults stand.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("gateway")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/reclamation")
	v.SetEnvPrefix("RECLAMATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default registered for AutomaticEnv to feed
	// Unmarshal; env-only keys are invisible to viper otherwise.
	def := Default()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("tls_cert_file", "")
	v.SetDefault("tls_key_file", "")
	v.SetDefault("allowed_origins", []string{})
	v.SetDefault("rate_limit_interval", def.RateLimitInterval)
	v.SetDefault("rate_limit_max", def.RateLimitMax)
	v.SetDefault("duplicate_history", def.DuplicateHistory)
	v.SetDefault("duplicate_debounce", def.DuplicateDebounce)
	v.SetDefault("global_rate_per_second", def.GlobalRatePerSecond)
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("telegram_chat_id", "")
	v.SetDefault("notifier_timeout", def.NotifierTimeout)
	v.SetDefault("roster_path", "")
	v.SetDefault("audit_db_path", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the gateway cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.RateLimitInterval <= 0 {
		return fmt.Errorf("rate_limit_interval must be positive, got %s", c.RateLimitInterval)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("rate_limit_max must be positive, got %d", c.RateLimitMax)
	}
	if c.DuplicateDebounce <= 0 {
		return fmt.Errorf("duplicate_debounce must be positive, got %s", c.DuplicateDebounce)
	}
	if c.DuplicateHistory < c.DuplicateDebounce {
		return fmt.Errorf("duplicate_history (%s) must cover duplicate_debounce (%s)",
			c.DuplicateHistory, c.DuplicateDebounce)
	}
	if c.GlobalRatePerSecond < 0 {
		return fmt.Errorf("global_rate_per_second must not be negative, got %g", c.GlobalRatePerSecond)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("tls_cert_file and tls_key_file must be set together")
	}
	return nil
}
