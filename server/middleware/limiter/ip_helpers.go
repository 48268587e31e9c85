// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIP extracts the client's address from an HTTP request with proxy awareness.
//
// X-Real-IP and X-Forwarded-For are only trusted when the connection comes from a
// private or loopback address. The zero Addr is returned when nothing parses.
func clientIP(r *http.Request) netip.Addr {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	remote, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}

	remote = remote.Unmap()

	if !remote.IsPrivate() && !remote.IsLoopback() {
		return remote
	}

	if realIP, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return realIP.Unmap()
	}

	// The last X-Forwarded-For entry was added by the proxy closest to us.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if forwarded, err := netip.ParseAddr(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return forwarded.Unmap()
		}
	}

	return remote
}

// networkOf returns the network addr belongs to, using ipv4Prefix or ipv6Prefix bits.
func networkOf(addr netip.Addr, ipv4Prefix, ipv6Prefix int) netip.Prefix {
	bits := ipv6Prefix
	if addr.Is4() {
		bits = ipv4Prefix
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return netip.PrefixFrom(addr, addr.BitLen())
	}

	return prefix
}

// inList reports whether addr equals or falls within any entry (address or CIDR).
//
// Malformed entries never match.
func inList(addr netip.Addr, entries []string) bool {
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)

		if strings.Contains(entry, "/") {
			if prefix, err := netip.ParsePrefix(entry); err == nil && prefix.Contains(addr) {
				return true
			}

			continue
		}

		if other, err := netip.ParseAddr(entry); err == nil && other.Unmap() == addr {
			return true
		}
	}

	return false
}
