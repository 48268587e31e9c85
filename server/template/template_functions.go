// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package template provides small formatting and URL helpers shared by views.
*/
package template

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// PageURL returns requestURI with its "page" query parameter set to page.
func PageURL(requestURI string, page int) string {
	return PageParamURL(requestURI, "page", page)
}

// PageParamURL returns requestURI with the query parameter param set to page.
//
// Other query parameters are kept. Page 1 drops the parameter entirely.
func PageParamURL(requestURI, param string, page int) string {
	u, err := url.Parse(requestURI)
	if err != nil {
		u = &url.URL{Path: requestURI}
	}

	query := u.Query()
	if page <= 1 {
		query.Del(param)
	} else {
		query.Set(param, strconv.Itoa(page))
	}

	u.RawQuery = query.Encode()

	return u.RequestURI()
}

// PrettyNumber pretty prints an integer with commas as thousands separators.
func PrettyNumber(n int) string {
	digits := strconv.Itoa(n)

	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	const groupSize = 3

	if len(digits) <= groupSize {
		return sign + digits
	}

	var b strings.Builder

	b.WriteString(sign)

	lead := len(digits) % groupSize
	if lead > 0 {
		b.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += groupSize {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+groupSize])
	}

	return b.String()
}

// IsFirstPathPart checks if the first part of the current path matches the given path.
func IsFirstPathPart(currentPath, pathToCheck string) bool {
	currentPath = strings.TrimRight(currentPath, "/")
	pathToCheck = strings.TrimRight(pathToCheck, "/")

	first, _, _ := strings.Cut(strings.TrimPrefix(currentPath, "/"), "/")
	if first == "" {
		return false
	}

	return "/"+first == pathToCheck
}

// RenderToString converts a templ.Component to its string representation.
//
// A rendering error is formatted into the returned string.
func RenderToString(c templ.Component) string {
	var buffer bytes.Buffer

	if err := c.Render(context.Background(), &buffer); err != nil {
		return fmt.Errorf("templ: failed to render component: %w", err).Error()
	}

	return buffer.String()
}
