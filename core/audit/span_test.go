// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{bytesInMB, "1.00M"},
		{bytesInGB * 2, "2.00G"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, humanizeSize(tc.in))
	}
}

func TestSpan_ServerTimingName(t *testing.T) {
	t.Parallel()

	span := Span{Destination: ToBackend, Method: "GET", URL: "http://backend/wallpaper/file/find/page?page=1"}
	parts := strings.Split(span.ServerTimingName(), "$")

	assert.Len(t, parts, 3)
	assert.Equal(t, "backend", parts[0])
	assert.Equal(t, "GET", parts[1])

	decoded, err := base64.RawURLEncoding.DecodeString(parts[2])
	assert.NoError(t, err)
	assert.Equal(t, span.URL, string(decoded))
}

func TestSpan_EndIsIdempotent(t *testing.T) {
	t.Parallel()

	span := Span{Destination: ToUser}
	_ = span.Begin(t.Context())

	span.End()
	first := span.Duration()
	span.End()

	assert.Equal(t, first, span.Duration())
}
