package configload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taluhq/httpkit"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, "client.yaml", `
name: billing
base_url: https://billing.example.com
timeout: 5s
connect_timeout: 2s
headers:
  X-Team: payments
max_redirects: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "billing" {
		t.Errorf("Name=%q", cfg.Name)
	}
	if cfg.BaseURL != "https://billing.example.com" {
		t.Errorf("BaseURL=%q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout=%v", cfg.Timeout)
	}
	if cfg.ConnectTimeout != 2*time.Second {
		t.Errorf("ConnectTimeout=%v", cfg.ConnectTimeout)
	}
	if cfg.Headers["X-Team"] != "payments" {
		t.Errorf("Headers=%v", cfg.Headers)
	}
	if cfg.MaxRedirects != 3 {
		t.Errorf("MaxRedirects=%d", cfg.MaxRedirects)
	}
	// Unset keys pick up defaults.
	if cfg.PoolMaxIdlePerHost == 0 {
		t.Error("expected pool defaults to be applied")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "client.yaml", `
base_url: https://file.example.com
`)
	t.Setenv("HTTPKIT_BASE_URL", "https://env.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL=%q, environment must override the file", cfg.BaseURL)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("HTTPKIT_BASE_URL", "https://env-only.example.com")

	cfg, err := LoadWithOptions(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://env-only.example.com" {
		t.Errorf("BaseURL=%q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout=%v, want default", cfg.Timeout)
	}
}

func TestLoadDotenv(t *testing.T) {
	envPath := writeFile(t, "custom.env", "HTTPKIT_NAME=from-dotenv\n")
	// godotenv sets process env for real; clean up after.
	defer os.Unsetenv("HTTPKIT_NAME")

	cfg, err := LoadWithOptions(Options{EnvFile: envPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "from-dotenv" {
		t.Errorf("Name=%q", cfg.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !httpkit.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	_, err := LoadWithOptions(Options{EnvFile: filepath.Join(t.TempDir(), "absent.env")})
	if !httpkit.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := writeFile(t, "client.yaml", `
base_url: "::bad"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}
