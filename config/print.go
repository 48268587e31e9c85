// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("cacheid", cfg.Instance.FileServerCacheID).
		Msg("Starting WallFE")

	configYAML, err := cfg.printable()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().
		Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}

// printable renders the configuration as YAML with secrets redacted.
func (cfg *ServerConfig) printable() ([]byte, error) {
	// shallow copy, so redaction doesn't touch the live config
	printableConfig := *cfg
	printableConfig.Session.Secret = redactedValue

	return yaml.MarshalWithOptions(printableConfig, GetDurationEncoderOption())
}
