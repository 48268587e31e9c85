// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"aidanwoods.dev/go-paseto"
	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errBackendURLRequired           = errors.New("backend.baseUrl is required")
	errBackendURLInvalid            = errors.New("backend.baseUrl must be an absolute http(s) URL")
	errBackendTimeoutInvalid        = errors.New("backend.timeout must be positive")
	errSessionSecretInvalid         = errors.New("session.secret is not a valid v4.local key")
	errSessionMaxAgeInvalid         = errors.New("session.maxAge must be positive")
	errCacheSizeInvalid             = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errPageSizeInvalid              = errors.New("page.size must be positive")
	errLimiterRateInvalid           = errors.New("limiter.rate and limiter.burst must be positive when the limiter is enabled")
	errLimiterPrefixInvalid         = errors.New("limiter.ipv4Prefix must be within 0-32 and limiter.ipv6Prefix within 0-128")
)

var fileModeOctalRegexp = regexp.MustCompile(`^0?[0-7]{3}$`)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if err := cfg.validateBackend(); err != nil {
		return err
	}

	if err := cfg.validateSession(); err != nil {
		return err
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errCacheSizeInvalid
	}

	if cfg.Page.Size <= 0 {
		return errPageSizeInvalid
	}

	if cfg.Limiter.Enabled && (cfg.Limiter.Rate <= 0 || cfg.Limiter.Burst <= 0) {
		return errLimiterRateInvalid
	}

	if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 || cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
		return errLimiterPrefixInvalid
	}

	return nil
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().Str("host", cfg.Basic.Host).Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8383"
			log.Info().Str("port", cfg.Basic.Port).Msg("Using default port")
		}

		return nil
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	switch {
	case cfg.Basic.RawUnixSocketPermissions == "":
		cfg.Basic.UnixSocketPermissions = 0o666
	case fileModeOctalRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
		mode, _ := strconv.ParseUint(cfg.Basic.RawUnixSocketPermissions, 8, 32)

		cfg.Basic.UnixSocketPermissions = os.FileMode(mode)
	default:
		return errUnixSocketInvalidPermissions
	}

	return nil
}

func (cfg *ServerConfig) validateBackend() error {
	if cfg.Backend.BaseURL == "" {
		return errBackendURLRequired
	}

	parsed, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", errBackendURLInvalid, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %s", errBackendURLInvalid, cfg.Backend.BaseURL)
	}

	// Endpoint paths always start with a slash.
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	cfg.Backend.BaseURL = parsed.String()

	if cfg.Backend.Timeout <= 0 {
		return errBackendTimeoutInvalid
	}

	return nil
}

func (cfg *ServerConfig) validateSession() error {
	if cfg.Session.MaxAge <= 0 {
		return errSessionMaxAgeInvalid
	}

	if cfg.Session.Secret == "" {
		cfg.Session.Key = paseto.NewV4SymmetricKey()
		cfg.Session.KeySet = true

		log.Warn().
			Msgf("No session.secret configured, sessions will not survive a restart. To keep them, put this in config.yaml:\nsession:\n  secret: \"%s\"",
				cfg.Session.Key.ExportHex())

		return nil
	}

	key, err := paseto.V4SymmetricKeyFromHex(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("%w: %w", errSessionSecretInvalid, err)
	}

	cfg.Session.Key = key
	cfg.Session.KeySet = true

	// remove key. no longer needed.
	cfg.Session.Secret = ""

	return nil
}
