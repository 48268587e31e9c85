// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/server/middleware"
	"codeberg.org/wallfe/wallfe/server/middleware/limiter"
	"codeberg.org/wallfe/wallfe/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.Compress)
	router.Use(middleware.NormalizeURL)                // handle trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.WithSession)                 // backend calls read the token from here
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)
	}
}
