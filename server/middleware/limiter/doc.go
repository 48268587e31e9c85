// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that enforces per-network rate limiting for HTTP requests.

Clients are grouped by IP network (see limiter.ipv4Prefix and limiter.ipv6Prefix).
Each network gets a token bucket for page views and a stricter one for POST actions,
which covers login and register attempts.
*/
package limiter
