// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"WALLFE_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"WALLFE_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"WALLFE_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"WALLFE_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
	} `yaml:"basic"`

	Backend struct {
		// BaseURL is where the wallpaper REST API lives, e.g. http://localhost:8088.
		BaseURL string        `env:"WALLFE_BACKEND_URL,overwrite" yaml:"baseUrl"`
		Timeout time.Duration `env:"WALLFE_BACKEND_TIMEOUT,overwrite" yaml:"timeout"`
	} `yaml:"backend"`

	Session struct {
		// raw bytes of a v4.local symmetric key, hex encoded
		Secret string                `env:"WALLFE_SECRET" yaml:"secret"`
		Key    paseto.V4SymmetricKey `env:"-" yaml:"-"`
		KeySet bool                  `env:"-" yaml:"-"`
		MaxAge time.Duration         `env:"WALLFE_SESSION_MAX_AGE,overwrite" yaml:"maxAge"`
	} `yaml:"session"`

	Cache struct {
		Enabled bool          `env:"WALLFE_CACHE,overwrite" yaml:"enabled"`
		Size    int           `env:"WALLFE_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		TTL     time.Duration `env:"WALLFE_CACHE_TTL,overwrite" yaml:"cacheTTL"`
	} `yaml:"cache"`

	Page struct {
		Size int `env:"WALLFE_PAGE_SIZE,overwrite" yaml:"size"`
	} `yaml:"page"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
	} `yaml:"-"`

	Development struct {
		InDevelopment bool `env:"WALLFE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"WALLFE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"WALLFE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"WALLFE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled       bool     `env:"WALLFE_LIMITER,overwrite"                yaml:"enabled"`
		Rate          float64  `env:"WALLFE_LIMITER_RATE,overwrite"           yaml:"rate"`
		Burst         int      `env:"WALLFE_LIMITER_BURST,overwrite"          yaml:"burst"`
		PassIPs       []string `env:"WALLFE_LIMITER_PASS_LIST,overwrite"      yaml:"passList"`
		BlockIPs      []string `env:"WALLFE_LIMITER_BLOCK_LIST,overwrite"     yaml:"blockList"`
		IPv4Prefix    int      `env:"WALLFE_LIMITER_IPV4_PREFIX,overwrite"    yaml:"ipv4Prefix"`
		IPv6Prefix    int      `env:"WALLFE_LIMITER_IPV6_PREFIX,overwrite"    yaml:"ipv6Prefix"`
		StateFilepath string   `env:"WALLFE_LIMITER_STATE_FILEPATH,overwrite" yaml:"stateFilepath"`
	} `yaml:"limiter"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	// Precedence: -config flag, then WALLFE_CONFIGFILE, then ./config.yaml with a
	// fallback to ./config.yml.
	var configFilePath string

	switch envVar := os.Getenv("WALLFE_CONFIGFILE"); {
	case configFlagUserSet:
		configFilePath = parsedConfigFlagValue
	case envVar != "":
		configFilePath = envVar
	default:
		configFilePath = parsedConfigFlagValue
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat("./config.yml"); statErr == nil {
				configFilePath = "./config.yml"
			}
		}
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := cfg.load(configFilePath); err != nil {
		return err
	}

	cfg.setupLogging()
	cfg.print()

	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

// load applies defaults, the YAML file at configFilePath, environment variables
// and validation, in that order.
func (cfg *ServerConfig) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}

var staticSkippedPathPrefixes = []string{"/css/", "/favicon.ico"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	// Wallpaper bytes dominate the log otherwise.
	return !cfg.Development.InDevelopment && path == "/download"
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file, read for heuristics only.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
