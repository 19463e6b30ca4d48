package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment
// variables. If configFile is empty, it searches for storefront.yaml/.yml in
// standard locations. The search requires an explicit YAML extension so the
// binary itself (same base name, no extension) is never matched.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file found in any standard location. Set name/type
		// without search paths so ReadInConfig returns
		// ConfigFileNotFoundError (handled gracefully by callers).
		viper.SetConfigName("storefront")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: STOREFRONT_SERVER_HTTP_ADDR
	viper.SetEnvPrefix("STOREFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a storefront config file
// with an explicit YAML extension (.yaml or .yml).
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".storefront"),
	}
	if runtime.GOOS == "windows" {
		if pd := os.Getenv("ProgramData"); pd != "" {
			paths = append(paths, filepath.Join(pd, "storefront"))
		}
	} else {
		paths = append(paths, "/etc/storefront")
	}
	return findConfigFileInPaths(paths)
}

// findConfigFileInPaths returns the first storefront.yaml or .yml found in
// the given directories, or empty string if none exists.
func findConfigFileInPaths(paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "storefront"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds all config keys for environment variable support.
// Example: STOREFRONT_COMMERCE_CLIENT_ID overrides commerce.client_id.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("server.http_addr")
	_ = viper.BindEnv("server.log_level")
	_ = viper.BindEnv("server.base_url")

	_ = viper.BindEnv("commerce.base_url")
	_ = viper.BindEnv("commerce.client_id")
	_ = viper.BindEnv("commerce.timeout")

	_ = viper.BindEnv("checkout.post_flow_url")
	_ = viper.BindEnv("checkout.thank_you_url")

	_ = viper.BindEnv("newsletter.url")
	_ = viper.BindEnv("newsletter.timeout")
	_ = viper.BindEnv("newsletter.rate_per_minute")
	_ = viper.BindEnv("newsletter.burst")

	_ = viper.BindEnv("storage.backend")
	_ = viper.BindEnv("storage.path")

	_ = viper.BindEnv("tracing.enabled")

	_ = viper.BindEnv("dev_mode")
}

// LoadConfig reads the configuration file, applies environment overrides,
// sets defaults, validates, and returns the Config.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with env vars only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
