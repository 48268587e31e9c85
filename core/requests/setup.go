// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/config"
)

// Default is the client used by the server. It is set by Setup.
var Default *Client

// Setup creates Default from config.Global.
func Setup() error {
	client := NewClient(config.Global.Backend.BaseURL, config.Global.Backend.Timeout)

	if config.Global.Cache.Enabled {
		cache, err := NewResponseCache(config.Global.Cache.Size, config.Global.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to set up backend client: %w", err)
		}

		client.Cache = cache

		log.Info().
			Int("size", config.Global.Cache.Size).
			Dur("ttl", config.Global.Cache.TTL).
			Msg("Initialized backend response cache")
	} else {
		log.Info().
			Msg("Cache is disabled, skipping cache initialization")
	}

	Default = client

	return nil
}
