// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// entropyBytes is how much of a random UUID goes into an ID.
const entropyBytes = 3

// Make makes a short ID with a 6 character timestamp and 3 bytes of entropy.
//
// IDs sort by wall clock within a day, which keeps log lines for one request
// adjacent when grepping.
func Make() string {
	id := uuid.New()

	return maketime(time.Now()) + base64.RawURLEncoding.EncodeToString(id[:entropyBytes])
}

// Child derives an ID for a sub-operation, e.g. a backend call made while
// serving a user request.
func Child(parent string) string {
	if parent == "" {
		return Make()
	}

	return parent + "-" + Make()
}

func maketime(t time.Time) string {
	return t.Format("150405")
}
