package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string `mapstructure:"port"`
	DBDSN            string `mapstructure:"db_dsn"`
	MaxDBConnections int    `mapstructure:"max_db_connections"`
	LogFile          string `mapstructure:"log_file"`

	// JWTSecret signs and verifies bearer credentials. Required.
	JWTSecret string `mapstructure:"jwt_secret"`
	// TokenTTL of zero issues tokens without an expiry.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// AdminEmails are seeded as admin principals at startup.
	AdminEmails []string `mapstructure:"admin_emails"`

	MarkUnavailableOnBooking bool `mapstructure:"mark_unavailable_on_booking"`
	HideUnavailableAds       bool `mapstructure:"hide_unavailable_ads"`

	CORSOrigins string `mapstructure:"cors_origins"`
	// RateLimit is requests per minute per client IP.
	RateLimit int `mapstructure:"rate_limit"`
}

// Load reads defaults, then the optional config file at path, then
// BUYCYCLE_* environment variables (e.g. BUYCYCLE_JWT_SECRET).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "5000")
	v.SetDefault("db_dsn", "buycycle.db")
	v.SetDefault("max_db_connections", 10)
	v.SetDefault("log_file", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "1h")
	v.SetDefault("admin_emails", []string{})
	v.SetDefault("mark_unavailable_on_booking", false)
	v.SetDefault("hide_unavailable_ads", false)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("rate_limit", 120)

	v.SetEnvPrefix("BUYCYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TOKEN_TTL=%s ADMINS=%d MARK_UNAVAILABLE=%t HIDE_UNAVAILABLE_ADS=%t",
		cfg.Port, redactDSN(cfg.DBDSN), cfg.LogFile, cfg.TokenTTL, len(cfg.AdminEmails),
		cfg.MarkUnavailableOnBooking, cfg.HideUnavailableAds)
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required (env: BUYCYCLE_JWT_SECRET)")
	}
	if c.DBDSN == "" {
		return errors.New("db_dsn is required")
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("token_ttl must not be negative, got %s", c.TokenTTL)
	}
	if c.MaxDBConnections < 1 {
		return fmt.Errorf("max_db_connections must be positive, got %d", c.MaxDBConnections)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("rate_limit must be positive, got %d", c.RateLimit)
	}
	return nil
}

// redactDSN hides a password in URL-style DSNs.
func redactDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if i := strings.Index(creds, ":"); i >= 0 {
		creds = creds[:i] + ":***"
	}
	return dsn[:scheme+3] + creds + dsn[at:]
}
