package config

import (
	"fmt"
	"os"
)

const EnvTenantsDir = "BEACON_TENANTS_DIR"

// TenantsConfig holds the location of per-container configuration
// directories on disk.
type TenantsConfig struct {
	Dir string `toml:"dir"`
}

// Merge overwrites non-zero fields from overlay.
func (c *TenantsConfig) Merge(overlay *TenantsConfig) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
}

// Finalize applies defaults, environment overrides, and validation.
func (c *TenantsConfig) Finalize() error {
	if c.Dir == "" {
		c.Dir = "configurations"
	}
	if v := os.Getenv(EnvTenantsDir); v != "" {
		c.Dir = v
	}
	if c.Dir == "" {
		return fmt.Errorf("tenants dir required")
	}
	return nil
}
