// Package config handles loading and validating strapi-mcp configuration
// from defaults, an optional config file, and STRAPI_* environment
// variables.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Placeholder credential values that ship in tutorial snippets. Rejecting
// them early gives a clearer error than a 401 from the CMS.
var placeholderValues = map[string]bool{
	"strapi_token":         true,
	"your-api-token-here":  true,
	"your_api_token_here":  true,
	"your-admin-password":  true,
	"changeme":             true,
	"<token>":              true,
	"<your-strapi-token>":  true,
	"<your-admin-email>":   true,
	"<admin-password>":     true,
	"xxxxxxxxxxxxxxxxxxxx": true,
}

// Config is the complete strapi-mcp configuration.
type Config struct {
	// URL is the CMS base URL, without a trailing slash.
	URL string `yaml:"url" mapstructure:"url"`

	// APIToken is a static bearer token for the public REST API.
	APIToken string `yaml:"apiToken" mapstructure:"apiToken"`

	// AdminEmail and AdminPassword mint admin session tokens.
	AdminEmail    string `yaml:"adminEmail"    mapstructure:"adminEmail"`
	AdminPassword string `yaml:"adminPassword" mapstructure:"adminPassword"`

	// TokenCachePath stores the admin session token between runs.
	// Empty disables the cache.
	TokenCachePath string `yaml:"tokenCachePath" mapstructure:"tokenCachePath"`

	Timeouts TimeoutConfig `yaml:"timeouts" mapstructure:"timeouts"`
	Login    LoginConfig   `yaml:"login"    mapstructure:"login"`
}

// TimeoutConfig bounds the client's waiting.
type TimeoutConfig struct {
	// Request is the per-HTTP-call timeout.
	Request time.Duration `yaml:"request" mapstructure:"request"`
	// LoginWait caps how long a caller waits for an in-flight login.
	LoginWait time.Duration `yaml:"loginWait" mapstructure:"loginWait"`
}

// LoginConfig tunes the credential-exchange retry policy. The defaults are
// conventions, not protocol requirements.
type LoginConfig struct {
	// MaxAttempts is the 429 retry budget per login.
	MaxAttempts int `yaml:"maxAttempts" mapstructure:"maxAttempts"`
	// BackoffBase is the first 429 backoff delay; it doubles per retry.
	BackoffBase time.Duration `yaml:"backoffBase" mapstructure:"backoffBase"`
	// MinInterval spaces consecutive credential exchanges apart.
	MinInterval time.Duration `yaml:"minInterval" mapstructure:"minInterval"`
	// ExpirySkew treats session tokens expiring this soon as already gone.
	ExpirySkew time.Duration `yaml:"expirySkew" mapstructure:"expirySkew"`
}

// Default returns a Config populated with sensible default values.
func Default() *Config {
	return &Config{
		URL: "http://localhost:1337",
		Timeouts: TimeoutConfig{
			Request:   30 * time.Second,
			LoginWait: 30 * time.Second,
		},
		Login: LoginConfig{
			MaxAttempts: 3,
			BackoffBase: time.Second,
			MinInterval: time.Second,
			ExpirySkew:  30 * time.Second,
		},
	}
}

// Load builds the effective configuration: defaults first, then the config
// file at configPath (YAML or TOML, optional — pass "" to skip), then
// STRAPI_* environment variables on top.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()

	if configPath != "" {
		ext := strings.TrimPrefix(filepath.Ext(configPath), ".")
		switch ext {
		case "yaml", "yml":
			v.SetConfigType("yaml")
		case "toml":
			v.SetConfigType("toml")
		default:
			// Default to yaml if unrecognised.
			v.SetConfigType("yaml")
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// The environment variable names match what the Strapi tooling
	// ecosystem already uses, so credentials configured for other tools
	// keep working here.
	bindings := map[string]string{
		"url":            "STRAPI_URL",
		"apiToken":       "STRAPI_API_TOKEN",
		"adminEmail":     "STRAPI_ADMIN_EMAIL",
		"adminPassword":  "STRAPI_ADMIN_PASSWORD",
		"tokenCachePath": "STRAPI_TOKEN_CACHE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return cfg, nil
}

// Validate checks that the configuration can possibly work: a parseable
// base URL, at least one credential, no placeholder values, and a complete
// admin identity when one is given.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("base URL is required (set STRAPI_URL)")
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL %q is not a valid http(s) URL", c.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https", c.URL)
	}

	hasToken := c.APIToken != ""
	hasAdmin := c.AdminEmail != "" || c.AdminPassword != ""
	if !hasToken && !hasAdmin {
		return fmt.Errorf("no credentials configured: set STRAPI_API_TOKEN and/or STRAPI_ADMIN_EMAIL + STRAPI_ADMIN_PASSWORD")
	}
	if hasAdmin && (c.AdminEmail == "" || c.AdminPassword == "") {
		return fmt.Errorf("admin credentials are incomplete: both STRAPI_ADMIN_EMAIL and STRAPI_ADMIN_PASSWORD are required")
	}

	for name, value := range map[string]string{
		"STRAPI_API_TOKEN":      c.APIToken,
		"STRAPI_ADMIN_PASSWORD": c.AdminPassword,
	} {
		if placeholderValues[strings.ToLower(value)] {
			return fmt.Errorf("%s is set to the placeholder value %q — replace it with a real credential", name, value)
		}
	}
	return nil
}

// HasAdminCredentials reports whether a complete admin identity is set.
func (c *Config) HasAdminCredentials() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// Redacted returns a copy safe for printing: secrets are masked, keeping
// just enough of the tail to recognise which credential is loaded.
func (c *Config) Redacted() *Config {
	out := *c
	out.APIToken = mask(c.APIToken)
	out.AdminPassword = mask(c.AdminPassword)
	return &out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
