// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/home",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/profile/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/profile",
		},
		{
			name:             "Query string is preserved",
			requestURL:       "/home/?name=sea&page=2",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/home?name=sea&page=2",
		},
		{
			name:             "Repeated slashes collapse to root",
			requestURL:       "//",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			rr := httptest.NewRecorder()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			NormalizeURL(rr, req, next)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
		})
	}
}
