// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/core/cookie"
)

func TestSession_IsAuthenticated(t *testing.T) {
	t.Parallel()

	assert.False(t, Session{}.IsAuthenticated())
	assert.False(t, Session{ServerKey: "captcha-key"}.IsAuthenticated())
	assert.True(t, Session{Token: "abc"}.IsAuthenticated())
}

func TestSession_WithServerKeyDoesNotMutate(t *testing.T) {
	t.Parallel()

	original := Session{Token: "a", ServerKey: "b"}
	changed := original.WithServerKey("d")

	assert.Equal(t, Session{Token: "a", ServerKey: "b"}, original)
	assert.Equal(t, Session{Token: "a", ServerKey: "d"}, changed)
}

func TestSealer_RoundTrip(t *testing.T) {
	t.Parallel()

	sealer := NewSealer(paseto.NewV4SymmetricKey(), time.Hour)
	in := Session{Token: "eyJhbGciOi.token", ServerKey: "captcha:1234"}

	out, err := sealer.Open(sealer.Seal(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSealer_RejectsForeignKey(t *testing.T) {
	t.Parallel()

	sealed := NewSealer(paseto.NewV4SymmetricKey(), time.Hour).Seal(Session{Token: "t"})

	_, err := NewSealer(paseto.NewV4SymmetricKey(), time.Hour).Open(sealed)
	assert.Error(t, err)
}

func TestSealer_RejectsTampered(t *testing.T) {
	t.Parallel()

	sealer := NewSealer(paseto.NewV4SymmetricKey(), time.Hour)
	sealed := []byte(sealer.Seal(Session{Token: "t"}))

	// flip a payload character away from the end, where base64 padding bits live
	i := len(sealed) - 10
	if sealed[i] == 'A' {
		sealed[i] = 'B'
	} else {
		sealed[i] = 'A'
	}

	_, err := sealer.Open(string(sealed))
	assert.Error(t, err)
}

func TestSealer_RejectsExpired(t *testing.T) {
	t.Parallel()

	sealer := NewSealer(paseto.NewV4SymmetricKey(), time.Hour)
	sealer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	sealed := sealer.Seal(Session{Token: "t"})

	_, err := sealer.Open(sealed)
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Session{}, FromContext(t.Context()))

	ctx := WithSession(t.Context(), Session{Token: "t"})
	assert.Equal(t, "t", FromContext(ctx).Token)
}

// TestLoadSave exercises the cookie path against config.Global, so it does not run in parallel.
func TestLoadSave(t *testing.T) {
	config.Global.Session.Key = paseto.NewV4SymmetricKey()
	config.Global.Session.KeySet = true
	config.Global.Session.MaxAge = time.Hour

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	Save(rr, r, Session{Token: "persisted", ServerKey: "k"})

	resp := rr.Result()
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, string(cookie.SessionCookie), cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, "persisted", "token is encrypted")

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])

	assert.Equal(t, Session{Token: "persisted", ServerKey: "k"}, Load(next))

	t.Run("GarbageCookie", func(t *testing.T) {
		bad := httptest.NewRequest(http.MethodGet, "/", nil)
		bad.AddCookie(&http.Cookie{Name: string(cookie.SessionCookie), Value: "v4.local.garbage"})

		assert.Equal(t, Session{}, Load(bad))
	})

	t.Run("SaveEmptyClears", func(t *testing.T) {
		rr := httptest.NewRecorder()

		Save(rr, r, Session{})

		assert.Contains(t, rr.Header().Get("Set-Cookie"), "Session=;")
	})
}
