// Package config provides the configuration schema for the storefront
// server. Configuration is file-based (storefront.yaml) with environment
// variable overrides; every field has a working default so the server can
// start with no config file at all.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for the storefront server.
type Config struct {
	// Server configures the HTTP listener and the public base URL.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Commerce configures the outbound commerce platform client.
	Commerce CommerceConfig `yaml:"commerce" mapstructure:"commerce"`

	// Checkout configures the return URLs sent to the payment platform.
	Checkout CheckoutConfig `yaml:"checkout" mapstructure:"checkout"`

	// Newsletter configures the newsletter provider and the rate limit
	// on the public subscribe endpoint.
	Newsletter NewsletterConfig `yaml:"newsletter" mapstructure:"newsletter"`

	// Storage configures where cart and session state persist.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Tracing configures OpenTelemetry span export.
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`

	// DevMode enables development features (verbose logging, etc).
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ServerConfig configures the HTTP server.
// TLS is expected to be handled by a reverse proxy.
type ServerConfig struct {
	// HTTPAddr is the address to listen on (e.g., "127.0.0.1:8080").
	// Defaults to "127.0.0.1:8080" (localhost only) if empty.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr" validate:"omitempty,hostname_port"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty. DevMode=true overrides to "debug".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// BaseURL is the public URL of this storefront, used to build the
	// checkout return links sent to the payment platform.
	// Defaults to "http://localhost:8080".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

// CommerceConfig configures the commerce platform client.
type CommerceConfig struct {
	// BaseURL is the platform API root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// ClientID authenticates API calls. Catalog and checkout calls fail
	// without it; the server still starts so the static pages work.
	ClientID string `yaml:"client_id" mapstructure:"client_id"`

	// Timeout is the per-request timeout (e.g., "15s").
	// Defaults to "15s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty"`
}

// CheckoutConfig configures where the payment platform sends the shopper
// back. Both default to paths under server.base_url.
type CheckoutConfig struct {
	// PostFlowURL is where an abandoned payment flow returns.
	PostFlowURL string `yaml:"post_flow_url" mapstructure:"post_flow_url" validate:"omitempty,url"`

	// ThankYouURL is where a completed payment returns.
	ThankYouURL string `yaml:"thank_you_url" mapstructure:"thank_you_url" validate:"omitempty,url"`
}

// NewsletterConfig configures the newsletter provider.
type NewsletterConfig struct {
	// URL is the provider's subscribe endpoint. Empty disables the
	// newsletter form.
	URL string `yaml:"url" mapstructure:"url" validate:"omitempty,url"`

	// Timeout is the per-request timeout (e.g., "10s").
	// Defaults to "10s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty"`

	// RatePerMinute limits subscribe requests per client IP.
	// Defaults to 5.
	RatePerMinute int `yaml:"rate_per_minute" mapstructure:"rate_per_minute" validate:"omitempty,min=1"`

	// Burst is the number of requests a client may make at once.
	// Defaults to 5.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"omitempty,min=1"`
}

// StorageConfig configures cart and session persistence.
type StorageConfig struct {
	// Backend selects the store implementation.
	// Valid values: "file" (JSON document) or "sqlite".
	// Defaults to "file".
	Backend string `yaml:"backend" mapstructure:"backend" validate:"required,storage_backend"`

	// Path is the state file location (file backend) or database file
	// (sqlite backend). Defaults to state.json or state.db under
	// ~/.storefront.
	Path string `yaml:"path" mapstructure:"path"`
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	// Enabled turns span export on. Default: false.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	// Bind to localhost only; network exposure is an explicit choice.
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = "127.0.0.1:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.DevMode {
		c.Server.LogLevel = "debug"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	if c.Commerce.BaseURL == "" {
		c.Commerce.BaseURL = "https://www.wixapis.com"
	}
	if c.Commerce.Timeout == "" {
		c.Commerce.Timeout = "15s"
	}

	if c.Checkout.PostFlowURL == "" {
		c.Checkout.PostFlowURL = c.Server.BaseURL + "/shop"
	}
	if c.Checkout.ThankYouURL == "" {
		c.Checkout.ThankYouURL = c.Server.BaseURL + "/thank-you"
	}

	if c.Newsletter.Timeout == "" {
		c.Newsletter.Timeout = "10s"
	}
	if c.Newsletter.RatePerMinute == 0 {
		c.Newsletter.RatePerMinute = 5
	}
	if c.Newsletter.Burst == 0 {
		c.Newsletter.Burst = 5
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStatePath(c.Storage.Backend)
	}
}

// defaultStatePath places state under ~/.storefront, falling back to the
// working directory when the home directory is unavailable.
func defaultStatePath(backend string) string {
	name := "state.json"
	if backend == "sqlite" {
		name = "state.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".storefront", name)
}

// ConfigDir returns the per-user directory for state and pid files.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".storefront"), nil
}

// ConfigFileUsed returns the path to the configuration file that was loaded.
// Returns an empty string if no config file was found (env vars only mode).
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
