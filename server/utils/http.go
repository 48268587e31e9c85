// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

const (
	// clientSessionCacheSize defines the size of the TLS session cache.
	clientSessionCacheSize = 20

	// maxIdleConnsPerHost defines maximum idle connections to keep per host.
	maxIdleConnsPerHost = 20

	// bufferSize defines the read and write buffer size in bytes (32KB).
	bufferSize = 32 * 1024
)

// NewHTTPClient returns an http.Client for talking to the backend.
//
// timeout bounds the whole exchange, including reading the body.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				ClientSessionCache: tls.NewLRUClientSessionCache(clientSessionCacheSize),
				MinVersion:         tls.VersionTLS12,
			},
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        0,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			WriteBufferSize:     bufferSize,
			ReadBufferSize:      bufferSize,
		},
		// The backend answers with JSON; redirects would only hide errors.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// IsConnectionSecure returns whether a connection is secure.
//
// Target environments are (containerized and bare metal):
//   - Internet -> reverse proxy -> application
//   - LAN -> reverse proxy -> application
//   - LAN -> application
//   - localhost -> application
//
// X-Forwarded-Proto is only trusted from private and loopback addresses.
func IsConnectionSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return false
	}

	return (parsedIP.IsPrivate() || parsedIP.IsLoopback()) && r.Header.Get("X-Forwarded-Proto") == "https"
}
