// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"mime"
	"net/http"
	"path"
	"strconv"

	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/core/session"
	"codeberg.org/wallfe/wallfe/server/utils"
)

// CaptchaImage serves a fresh captcha picture.
//
// The server key issued with it is stored in the session so that the next
// login or register call can present it.
func CaptchaImage(w http.ResponseWriter, r *http.Request) error {
	resp, err := backend().Captcha(r.Context())
	if err != nil {
		return err
	}

	contentType, img, err := core.CaptchaImage(resp)
	if err != nil {
		return err
	}

	if key := core.CaptchaKey(resp); key != "" {
		session.Save(w, r, session.FromContext(r.Context()).WithServerKey(key))
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))

	_, err = w.Write(img)

	return err
}

// Download streams a stored file from the backend.
func Download(w http.ResponseWriter, r *http.Request) error {
	fileName := utils.GetQueryParam(r, "fileName")
	if fileName == "" {
		return NewStatusError(http.StatusBadRequest, "missing query parameter: fileName")
	}

	resp, err := backend().Download(r.Context(), fileName)
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	disposition := resp.Header.Get("Content-Disposition")
	if disposition == "" {
		disposition = mime.FormatMediaType("inline", map[string]string{"filename": path.Base(fileName)})
	}

	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))

	_, err = w.Write(resp.Body)

	return err
}
