// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default backend timeout in seconds. Uploads of large wallpapers are slow.
	defaultBackendTimeoutSeconds = 600
	// Default cache TTL in minutes.
	defaultCacheTTLMinutes = 5
	// Default session lifetime in days.
	defaultSessionMaxAgeDays = 30
	// Default number of wallpapers per page.
	defaultPageSize = 24
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8383"

	cfg.Backend.BaseURL = "http://localhost:8088"
	cfg.Backend.Timeout = defaultBackendTimeoutSeconds * time.Second

	cfg.Session.MaxAge = defaultSessionMaxAgeDays * 24 * time.Hour

	cfg.Cache.Enabled = false
	cfg.Cache.Size = 100
	cfg.Cache.TTL = defaultCacheTTLMinutes * time.Minute

	cfg.Page.Size = defaultPageSize

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = 5
	cfg.Limiter.Burst = 60
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48
	cfg.Limiter.StateFilepath = "./data/limiter_state.json"
}
