// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import "net/http"

// UnauthorizedError asks the visitor to sign in before the request can be served.
//
// middleware.CatchError answers it with a 401 and the sign-in prompt.
type UnauthorizedError struct {
	// NoAuthReturnPath is where the prompt's cancel link leads.
	NoAuthReturnPath string
	// LoginReturnPath is where the login action redirects after success.
	LoginReturnPath string
}

func (e *UnauthorizedError) Error() string {
	return "sign in required for " + e.LoginReturnPath
}

// NewUnauthorizedError creates an UnauthorizedError.
func NewUnauthorizedError(noAuthReturnPath, loginReturnPath string) error {
	return &UnauthorizedError{
		NoAuthReturnPath: noAuthReturnPath,
		LoginReturnPath:  loginReturnPath,
	}
}

// UnauthorizedFor is the error for a backend 401 while serving r.
//
// Signing in brings the visitor back to r. Cancelling goes home.
func UnauthorizedFor(r *http.Request) *UnauthorizedError {
	return &UnauthorizedError{
		NoAuthReturnPath: "/home",
		LoginReturnPath:  r.URL.RequestURI(),
	}
}
