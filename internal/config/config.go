// Package config loads CdnConfig from the environment's config.toml.
package config

import (
	"net"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Firewall lists the IPs trusted to perform writes. It is enabled iff
// non-empty.
type Firewall struct {
	TrustedSources []string `toml:"trusted_sources"`
}

// Enabled reports whether the IP allowlist is in effect.
func (f Firewall) Enabled() bool {
	return len(f.TrustedSources) > 0
}

// Allows reports whether ip is present in the allowlist.
func (f Firewall) Allows(ip net.IP) bool {
	for _, raw := range f.TrustedSources {
		if trusted := net.ParseIP(raw); trusted != nil && trusted.Equal(ip) {
			return true
		}
	}
	return false
}

// Cdn is the process-lifetime-immutable configuration record.
type Cdn struct {
	StorageDir *string  `toml:"storage_path"`
	Firewall   Firewall `toml:"firewall"`
}

// DefaultStoragePath is used when the config omits storage_path and
// CDN_STORAGE_PATH is unset.
const DefaultStoragePath = "./uploads"

// StoragePath resolves the effective storage root: CdnConfig.storage_path
// takes precedence, then CDN_STORAGE_PATH (kept for parity with an earlier
// env-var-only revision), then the default.
func (c Cdn) StoragePath() string {
	if c.StorageDir != nil && *c.StorageDir != "" {
		return *c.StorageDir
	}
	if v := os.Getenv("CDN_STORAGE_PATH"); v != "" {
		return v
	}
	return DefaultStoragePath
}

// Dir returns the directory config.toml is loaded from: ./assets in the
// default (debug) environment, /etc/rs_cdn in release (CDN_ENV=release).
func Dir() string {
	if os.Getenv("CDN_ENV") == "release" {
		return "/etc/rs_cdn"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "assets"
	}
	return filepath.Join(cwd, "assets")
}

// Load reads and decodes {Dir()}/config.toml. A missing file yields a zero
// value Cdn (storage_path defaulted, firewall disabled) rather than an error,
// since an absent config is a valid "no firewall, default storage" setup.
func Load() (Cdn, error) {
	path := filepath.Join(Dir(), "config.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Cdn{}, nil
		}
		return Cdn{}, err
	}

	var cfg Cdn
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Cdn{}, err
	}
	return cfg, nil
}

// IsRelease reports whether the process is running in release mode.
func IsRelease() bool {
	return os.Getenv("CDN_ENV") == "release"
}
