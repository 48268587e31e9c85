// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// setupLogging points the global logger at the configured outputs.
func (cfg *ServerConfig) setupLogging() {
	if cfg.Development.InDevelopment {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	writers := []io.Writer{}

	for _, output := range cfg.Log.Outputs {
		switch output {
		case "/dev/stdout":
			writers = append(writers, ConsoleWriter(os.Stdout))
		case "/dev/stderr":
			writers = append(writers, ConsoleWriter(os.Stderr))
		default:
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

				continue
			}

			if cfg.Log.Format == "json" {
				writers = append(writers, file)
			} else {
				writers = append(writers, ConsoleWriter(file))
			}
		}
	}

	if len(writers) == 0 {
		writers = append(writers, ConsoleWriter(os.Stderr))
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

// ConsoleWriter returns a writer for zerolog that only colours output on a terminal.
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd())

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}

	if !noColor {
		w.FormatPrepare = func(m map[string]any) error {
			// pretty print request logs
			if sys, ok := m["sys"]; ok && sys == "http" {
				m["message"] = fmt.Sprintf("[%s] %v %-6s %s", m["destination"], m["status_code"], m["method"], m["url"])
				for _, key := range []string{"sys", "method", "status_code", "url", "destination", "request_id"} {
					delete(m, key)
				}
			}

			return nil
		}
	}

	return w
}
