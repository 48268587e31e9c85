// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/server/routes"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     string = "RateLimit-Limit"
	HeaderRateLimitRemaining string = "RateLimit-Remaining"
	HeaderRateLimitReset     string = "RateLimit-Reset"
)

// excludedPaths won't have traffic filtered by the limiter middleware.
var excludedPaths = []string{
	"/css/",
	"/favicon.ico",
	"/robots.txt",
}

// Evaluate is the entrypoint to the limiter middleware.
//
// Order of checks: excluded paths, pass list, block list, then the network's bucket
// (ActionBucket for POST, PageBucket otherwise).
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	lim := Default
	if lim == nil || isExcludedPath(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	defer lim.MaybeCleanup()

	addr := clientIP(r)
	if !addr.IsValid() {
		log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Request blocked, could not determine client IP")
		routes.BlockPage(w, r, routes.BlockData{Reason: "Could not determine client IP"}, http.StatusForbidden)

		return
	}

	if inList(addr, config.Global.Limiter.PassIPs) {
		next.ServeHTTP(w, r)

		return
	}

	network := networkOf(addr, config.Global.Limiter.IPv4Prefix, config.Global.Limiter.IPv6Prefix).String()

	if inList(addr, config.Global.Limiter.BlockIPs) {
		log.Warn().
			Str("ip", addr.String()).
			Str("network", network).
			Msg("Request blocked, IP in block-list")

		routes.BlockPage(w, r, routes.BlockData{Reason: "IP in block-list"}, http.StatusForbidden)

		return
	}

	kind := PageBucket
	if r.Method == http.MethodPost {
		kind = ActionBucket
	}

	decision := lim.Allow(network, kind)
	addRateLimitHeaders(w, decision)

	if !decision.Allowed {
		log.Warn().
			Str("ip", addr.String()).
			Str("network", network).
			Str("bucket", string(kind)).
			Msg("Request blocked, exceeded rate limit")

		routes.BlockPage(w, r, routes.BlockData{Reason: "Rate limit exceeded"}, http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

func isExcludedPath(path string) bool {
	for _, p := range excludedPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

// addRateLimitHeaders adds rate limiting information to the response headers.
func addRateLimitHeaders(w http.ResponseWriter, d Decision) {
	reset := strconv.FormatInt(d.Reset, 10)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
	w.Header().Set(HeaderRateLimitReset, reset)

	if !d.Allowed {
		w.Header().Set("Retry-After", reset)
	}
}
