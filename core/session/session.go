// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package session holds the per-browser authentication state.

A Session is a plain value: the bearer token issued by the backend on login,
and the transient server key that ties a captcha to the login or registration
attempt that answers it. It is persisted in a single sealed cookie so it
survives reloads, and travels through a request in its context.
*/
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/core/cookie"
	"codeberg.org/wallfe/wallfe/core/untrusted"
)

// domain separation for the sealed cookie. changing it invalidates every session.
const implicit = "WallFE session v1"

const (
	claimToken     = "token"
	claimServerKey = "serverKey"
)

var errNoKey = errors.New("session key not configured")

// Session is client-held authentication state.
type Session struct {
	// Token is sent verbatim as the Authorization header.
	Token string

	// ServerKey is sent as the redisKey header on login and registration.
	ServerKey string
}

// IsAuthenticated reports whether the session carries a token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsEmpty reports whether there is nothing worth persisting.
func (s Session) IsEmpty() bool {
	return s.Token == "" && s.ServerKey == ""
}

// WithServerKey returns a copy of s holding key.
func (s Session) WithServerKey(key string) Session {
	s.ServerKey = key

	return s
}

// Sealer encrypts sessions into cookie values and back.
type Sealer struct {
	Key    paseto.V4SymmetricKey
	MaxAge time.Duration

	// now is replaced in tests.
	now func() time.Time
}

// NewSealer returns a Sealer for key whose tokens expire after maxAge.
func NewSealer(key paseto.V4SymmetricKey, maxAge time.Duration) *Sealer {
	return &Sealer{Key: key, MaxAge: maxAge, now: time.Now}
}

// Seal encrypts s into an opaque v4.local token.
func (sealer *Sealer) Seal(s Session) string {
	now := sealer.now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(sealer.MaxAge))
	token.SetString(claimToken, s.Token)
	token.SetString(claimServerKey, s.ServerKey)

	return token.V4Encrypt(sealer.Key, []byte(implicit))
}

// Open decrypts a token produced by Seal.
//
// Expired, tampered and foreign tokens all fail. Expiry is checked against the wall clock.
func (sealer *Sealer) Open(sealed string) (Session, error) {
	parser := paseto.MakeParser([]paseto.Rule{paseto.NotExpired()})

	token, err := parser.ParseV4Local(sealer.Key, sealed, []byte(implicit))
	if err != nil {
		return Session{}, err
	}

	var s Session

	if s.Token, err = token.GetString(claimToken); err != nil {
		return Session{}, err
	}

	if s.ServerKey, err = token.GetString(claimServerKey); err != nil {
		return Session{}, err
	}

	return s, nil
}

// defaultSealer builds a Sealer from config.Global.
func defaultSealer() (*Sealer, error) {
	if !config.Global.Session.KeySet {
		return nil, errNoKey
	}

	return NewSealer(config.Global.Session.Key, config.Global.Session.MaxAge), nil
}

// Load reads the session cookie. A missing or unreadable cookie yields the
// empty session.
func Load(r *http.Request) Session {
	raw := untrusted.GetCookie(r, cookie.SessionCookie)
	if raw == "" {
		return Session{}
	}

	sealer, err := defaultSealer()
	if err != nil {
		return Session{}
	}

	s, err := sealer.Open(raw)
	if err != nil {
		log.Debug().Err(err).Msg("Discarding unreadable session cookie")

		return Session{}
	}

	return s
}

// Save persists s. Saving an empty session clears the cookie.
func Save(w http.ResponseWriter, r *http.Request, s Session) {
	if s.IsEmpty() {
		Clear(w, r)

		return
	}

	sealer, err := defaultSealer()
	if err != nil {
		log.Error().Err(err).Msg("Cannot persist session")

		return
	}

	untrusted.SetCookieFor(w, r, cookie.SessionCookie, sealer.Seal(s), sealer.MaxAge)
}

// Clear drops the persisted session.
func Clear(w http.ResponseWriter, r *http.Request) {
	untrusted.ClearCookie(w, r, cookie.SessionCookie)
}

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session attached to ctx, or the empty session.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey).(Session); ok {
		return s
	}

	return Session{}
}
