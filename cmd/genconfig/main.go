// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/config.yaml.example"
	filePerm       = 0o644

	placeholderBackendURL = "http://localhost:8088"

	envFileHeader = `# WallFE configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# WallFE configuration (via configuration file)
#
# Copy this file to config.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	proxySettingsComment = `
## Network proxy settings
## ref: https://pkg.go.dev/net/http#ProxyFromEnvironment
# HTTPS_PROXY=
# HTTP_PROXY=`

	backendYAMLComment = `  # -- Base URL of the wallpaper REST API; the /wallpaper/... paths are appended to it`

	secretComment = `# -- Hex-encoded 32-byte key sealing session cookies. Leave unset to generate
# an ephemeral key at startup (sessions are lost on restart).`
)

func main() {
	audit.SetDefaultLogger()

	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	writeExample(envOutputFile, renderEnv(cfg))

	yamlExample, err := renderYAML(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	writeExample(yamlOutputFile, yamlExample)
}

func writeExample(path, content string) {
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write example configuration")
	}

	log.Info().Str("path", path).Msg("Generated example configuration")
}

// renderEnv lists every env-tagged field of cfg, one section per top-level struct.
//
// The backend URL, host and port are left uncommented.
func renderEnv(cfg *config.ServerConfig) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		section, sectionValue := typ.Field(i), val.Field(i)

		if sectionValue.Kind() != reflect.Struct || section.Name == "Build" || section.Tag.Get("yaml") == "-" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", section.Name)

		fields := sectionValue.Type()
		for j := range fields.NumField() {
			tag, ok := fields.Field(j).Tag.Lookup("env")
			if !ok || tag == "-" {
				continue
			}

			sb.WriteString(envLine(strings.Split(tag, ",")[0], sectionValue.Field(j)))
		}

		sb.WriteString("\n")
	}

	sb.WriteString(strings.TrimSpace(proxySettingsComment) + "\n\n")

	return sb.String()
}

func envLine(name string, value reflect.Value) string {
	switch name {
	case "WALLFE_BACKEND_URL":
		return fmt.Sprintf("%s=\"%s\"\n", name, placeholderBackendURL)
	case "WALLFE_SECRET":
		return secretComment + "\n" + fmt.Sprintf("# %s=\n", name)
	case "WALLFE_PORT", "WALLFE_HOST":
		return fmt.Sprintf("%s=\"%v\"\n", name, value.Interface())
	}

	// Leave list and empty values blank to prompt for input.
	if value.Kind() == reflect.Slice || (value.Kind() == reflect.String && value.Len() == 0) {
		return fmt.Sprintf("# %s=\n", name)
	}

	return fmt.Sprintf("# %s=%v\n", name, value.Interface())
}

// renderYAML marshals cfg and comments out every setting except the backend URL.
func renderYAML(cfg *config.ServerConfig) (string, error) {
	example := *cfg
	example.Backend.BaseURL = placeholderBackendURL

	var marshaled strings.Builder

	encoder := yaml.NewEncoder(&marshaled, config.GetDurationEncoderOption(), yaml.Indent(2))
	if err := encoder.Encode(&example); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(marshaled.String(), "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			continue
		case !strings.HasPrefix(line, " "):
			// section header, e.g. "basic:"
			fmt.Fprintf(&sb, "\n%s\n", line)
		case strings.HasPrefix(trimmed, "baseUrl:"):
			sb.WriteString(backendYAMLComment + "\n")
			sb.WriteString(line + "\n")
		default:
			indent := len(line) - len(strings.TrimLeft(line, " "))
			fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indent), trimmed)
		}
	}

	return sb.String(), nil
}
