// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package r/w public state in a request.

Public state -- HTTP cookies -- is received from the user agent and can be anything.

The user controls all of it. Anything that must not be forged goes through
package session, which seals its cookie.
*/
package untrusted
