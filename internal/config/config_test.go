package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llmaniac/beacon/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "2m"

[database]
host = "localhost"
port = 5432
name = "beacon"
user = "beacon"
password = "beacon"
ssl_mode = "disable"

[tenants]
dir = "configurations"

[api]
base_path = "/api"
classify_timeout = "45s"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50

[agent]
name = "test-agent"

[agent.provider]
name = "ollama"
base_url = "http://localhost:11434"

[agent.model]
name = "llama3.1:8b"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeoutDuration() != time.Minute {
		t.Errorf("read timeout = %v, want 1m", cfg.Server.ReadTimeoutDuration())
	}
	if cfg.Database.Name != "beacon" {
		t.Errorf("database name = %q, want beacon", cfg.Database.Name)
	}
	if cfg.Tenants.Dir != "configurations" {
		t.Errorf("tenants dir = %q", cfg.Tenants.Dir)
	}
	if cfg.API.ClassifyTimeoutDuration() != 45*time.Second {
		t.Errorf("classify timeout = %v, want 45s", cfg.API.ClassifyTimeoutDuration())
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("default page size = %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Agent.Name != "test-agent" {
		t.Errorf("agent name = %q, want test-agent", cfg.Agent.Name)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("BEACON_ENV", "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("database host = %q, want overlay prodhost", cfg.Database.Host)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server host = %q, want base value", cfg.Server.Host)
	}
	if cfg.Env() != "prod" {
		t.Errorf("env = %q, want prod", cfg.Env())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("BEACON_SERVER_PORT", "7777")
	t.Setenv("BEACON_TENANTS_DIR", "/etc/beacon/tenants")
	t.Setenv("BEACON_API_CLASSIFY_TIMEOUT", "90s")
	t.Setenv("BEACON_AGENT_MODEL_NAME", "llama3.2:3b")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("server port = %d, want env 7777", cfg.Server.Port)
	}
	if cfg.Tenants.Dir != "/etc/beacon/tenants" {
		t.Errorf("tenants dir = %q, want env value", cfg.Tenants.Dir)
	}
	if cfg.API.ClassifyTimeoutDuration() != 90*time.Second {
		t.Errorf("classify timeout = %v, want 90s", cfg.API.ClassifyTimeoutDuration())
	}
	if cfg.Agent.Model == nil || cfg.Agent.Model.Name != "llama3.2:3b" {
		t.Errorf("agent model = %+v, want env value", cfg.Agent.Model)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "bad shutdown timeout",
			content: `
shutdown_timeout = "soon"
`,
		},
		{
			name: "port out of range",
			content: `
[server]
port = 99999
`,
		},
		{
			name: "bad classify timeout",
			content: `
[api]
classify_timeout = "whenever"
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", tc.content)
			chdir(t, dir)

			if _, err := config.Load(); err == nil {
				t.Error("expected load to fail")
			}
		})
	}
}
