package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefault
// ---------------------------------------------------------------------------

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.URL != "http://localhost:1337" {
		t.Errorf("URL: got %q, want %q", cfg.URL, "http://localhost:1337")
	}
	if cfg.Timeouts.Request != 30*time.Second {
		t.Errorf("Timeouts.Request: got %v, want %v", cfg.Timeouts.Request, 30*time.Second)
	}
	if cfg.Timeouts.LoginWait != 30*time.Second {
		t.Errorf("Timeouts.LoginWait: got %v, want %v", cfg.Timeouts.LoginWait, 30*time.Second)
	}
	if cfg.Login.MaxAttempts != 3 {
		t.Errorf("Login.MaxAttempts: got %d, want 3", cfg.Login.MaxAttempts)
	}
	if cfg.Login.BackoffBase != time.Second {
		t.Errorf("Login.BackoffBase: got %v, want 1s", cfg.Login.BackoffBase)
	}
	if cfg.Login.MinInterval != time.Second {
		t.Errorf("Login.MinInterval: got %v, want 1s", cfg.Login.MinInterval)
	}
	if cfg.Login.ExpirySkew != 30*time.Second {
		t.Errorf("Login.ExpirySkew: got %v, want 30s", cfg.Login.ExpirySkew)
	}
}

// ---------------------------------------------------------------------------
// TestLoad
// ---------------------------------------------------------------------------

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, "strapi-mcp.yaml", `
url: https://cms.example.com/
apiToken: file-token
login:
  maxAttempts: 5
  backoffBase: 2s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Trailing slash is trimmed.
	if cfg.URL != "https://cms.example.com" {
		t.Errorf("URL: got %q", cfg.URL)
	}
	if cfg.APIToken != "file-token" {
		t.Errorf("APIToken: got %q", cfg.APIToken)
	}
	if cfg.Login.MaxAttempts != 5 {
		t.Errorf("Login.MaxAttempts: got %d, want 5", cfg.Login.MaxAttempts)
	}
	if cfg.Login.BackoffBase != 2*time.Second {
		t.Errorf("Login.BackoffBase: got %v, want 2s", cfg.Login.BackoffBase)
	}
	// Untouched values keep defaults.
	if cfg.Login.MinInterval != time.Second {
		t.Errorf("Login.MinInterval: got %v, want default 1s", cfg.Login.MinInterval)
	}
}

func TestLoadFromTOML(t *testing.T) {
	path := writeConfig(t, "strapi-mcp.toml", `
url = "https://cms.example.com"
adminEmail = "admin@cms.example.com"
adminPassword = "pw"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdminEmail != "admin@cms.example.com" {
		t.Errorf("AdminEmail: got %q", cfg.AdminEmail)
	}
	if !cfg.HasAdminCredentials() {
		t.Error("HasAdminCredentials: got false, want true")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "strapi-mcp.yaml", `
url: https://file.example.com
apiToken: file-token
`)
	t.Setenv("STRAPI_URL", "https://env.example.com")
	t.Setenv("STRAPI_API_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "https://env.example.com" {
		t.Errorf("URL: got %q, want env override", cfg.URL)
	}
	if cfg.APIToken != "env-token" {
		t.Errorf("APIToken: got %q, want env override", cfg.APIToken)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("STRAPI_URL", "http://localhost:1338")
	t.Setenv("STRAPI_ADMIN_EMAIL", "a@b.c")
	t.Setenv("STRAPI_ADMIN_PASSWORD", "pw")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "http://localhost:1338" {
		t.Errorf("URL: got %q", cfg.URL)
	}
	if !cfg.HasAdminCredentials() {
		t.Error("HasAdminCredentials: got false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

// ---------------------------------------------------------------------------
// TestValidate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := Default()
		cfg.APIToken = "a-real-token"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid token-only", func(c *Config) {}, ""},
		{"valid admin-only", func(c *Config) {
			c.APIToken = ""
			c.AdminEmail = "a@b.c"
			c.AdminPassword = "pw"
		}, ""},
		{"missing url", func(c *Config) { c.URL = "" }, "base URL is required"},
		{"bad url", func(c *Config) { c.URL = "not a url" }, "not a valid"},
		{"bad scheme", func(c *Config) { c.URL = "ftp://host" }, "http or https"},
		{"no credentials", func(c *Config) { c.APIToken = "" }, "no credentials"},
		{"incomplete admin", func(c *Config) {
			c.AdminEmail = "a@b.c"
		}, "incomplete"},
		{"placeholder token", func(c *Config) {
			c.APIToken = "strapi_token"
		}, "placeholder"},
		{"placeholder password", func(c *Config) {
			c.AdminEmail = "a@b.c"
			c.AdminPassword = "changeme"
		}, "placeholder"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate: expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate: got %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRedacted
// ---------------------------------------------------------------------------

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.APIToken = "super-secret-token-abcd"
	cfg.AdminEmail = "admin@cms.example.com"
	cfg.AdminPassword = "pw"

	red := cfg.Redacted()

	if red.APIToken != "****abcd" {
		t.Errorf("APIToken: got %q, want masked tail", red.APIToken)
	}
	if red.AdminPassword != "****" {
		t.Errorf("AdminPassword: got %q, want fully masked", red.AdminPassword)
	}
	if red.AdminEmail != cfg.AdminEmail {
		t.Errorf("AdminEmail should not be masked: got %q", red.AdminEmail)
	}
	// Original is untouched.
	if cfg.APIToken != "super-secret-token-abcd" {
		t.Error("Redacted mutated the original config")
	}
}
