// Package config provides configuration loading and validation utilities.
package config

import (
	"net/url"
	"time"

	"github.com/kartabot/kartabot/pkg/logger"
)

// Config holds runtime configuration for the card order bot.
type Config struct {
	AppEnv string

	Bot     BotConfig     `mapstructure:"bot"`
	Server  ServerConfig  `mapstructure:"server"`
	WebApp  WebAppConfig  `mapstructure:"webapp"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Admins  AdminsConfig  `mapstructure:"admins"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Log     logger.Config `mapstructure:"log"`
}

// BotConfig configures the Telegram connection.
type BotConfig struct {
	Token   string        `mapstructure:"token" validate:"required"`
	Mode    string        `mapstructure:"mode" validate:"omitempty,oneof=long_poll webhook"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP surface serving the lead API, metrics and
// the static web app. TLS material is optional; both files must be set to
// enable it.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	TLSCertFile     string        `mapstructure:"tls_cert_file"`
	TLSKeyFile      string        `mapstructure:"tls_key_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// WebAppConfig points at the embedded mini application.
type WebAppConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	Dir     string `mapstructure:"dir"`
}

// SecureURL returns the mini app base URL when it is a valid https URL,
// otherwise an empty string. Telegram refuses to open non-https web apps,
// so buttons are simply not offered in that case.
func (w WebAppConfig) SecureURL() string {
	u, err := url.Parse(w.BaseURL)
	if err != nil || u.Scheme != "https" {
		return ""
	}

	return w.BaseURL
}

// CatalogConfig points at the product matrix dataset.
type CatalogConfig struct {
	Path  string `mapstructure:"path" validate:"required"`
	Watch bool   `mapstructure:"watch"`
}

// AdminsConfig lists the operator usernames allowed to receive leads.
type AdminsConfig struct {
	Usernames []string `mapstructure:"usernames"`
}

// RedisConfig enables the optional Redis session backend.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// SentryConfig enables error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Enabled true"`
}
