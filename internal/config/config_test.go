package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 10*time.Second || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.Server.ReadTimeout, cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Server.RateLimit.RPS != 5 || cfg.Server.RateLimit.Burst != 10 {
		t.Errorf("rate limit = %+v", cfg.Server.RateLimit)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Batch.Workers)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Server.Auth.JWTKey != "" {
		t.Error("JWTKey should default to empty")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  addr: ":9000"
  read_timeout: 2s
  rate_limit:
    rps: 1.5
batch:
  workers: 8
report:
  project: Riverside Warehouse
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BEAMCHECK_BATCH_WORKERS", "2")
	t.Setenv("BEAMCHECK_SERVER_AUTH_JWT_KEY", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.RateLimit.RPS != 1.5 || cfg.Server.RateLimit.Burst != 10 {
		t.Errorf("rate limit = %+v", cfg.Server.RateLimit)
	}
	if cfg.Batch.Workers != 2 {
		t.Errorf("Workers = %d, want env value 2", cfg.Batch.Workers)
	}
	if cfg.Server.Auth.JWTKey != "secret" {
		t.Errorf("JWTKey = %q, want env value", cfg.Server.Auth.JWTKey)
	}
	if cfg.Report.Project != "Riverside Warehouse" {
		t.Errorf("Project = %q", cfg.Report.Project)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BEAMCHECK_SERVER_ADDR=:7070\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets the process environment; restore it afterwards
	t.Setenv("BEAMCHECK_SERVER_ADDR", "")
	os.Unsetenv("BEAMCHECK_SERVER_ADDR")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070 from .env", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("batch:\n  workers: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(workers: 0) error = nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Addr: ":8080", MaxBodyBytes: 1024},
			Batch:  BatchConfig{Workers: 1},
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimit.RPS = 0 }, false},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"zero body", func(c *Config) { c.Server.MaxBodyBytes = 0 }, true},
		{"negative burst", func(c *Config) { c.Server.RateLimit.Burst = -1 }, true},
		{"no workers", func(c *Config) { c.Batch.Workers = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
