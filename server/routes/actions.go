// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/core/session"
	"codeberg.org/wallfe/wallfe/server/utils"
)

// maxUploadSize caps the size of an uploaded wallpaper.
const maxUploadSize = 32 << 20

func LoginAction(w http.ResponseWriter, r *http.Request) error {
	form, err := requireForm(r, "userName", "userPassword", "captchaCode")
	if err != nil {
		return err
	}

	resp, err := backend().Login(r.Context(), form[0], form[1], form[2])

	failure, err := actionFailure(resp, err)
	if err != nil {
		return err
	}

	if failure != "" {
		redirectWithFlash(w, r, "/login", failure)

		return nil
	}

	token, err := core.LoginToken(resp)
	if err != nil {
		redirectWithFlash(w, r, "/login", err.Error())

		return nil
	}

	// The server key only backs one captcha answer.
	session.Save(w, r, session.Session{Token: token})

	redirectWithFlash(w, r, returnPath(r, "/home"), "Signed in as "+form[0]+".")

	return nil
}

func RegisterAction(w http.ResponseWriter, r *http.Request) error {
	form, err := requireForm(r, "userName", "userPassword", "userEmail", "captchaCode")
	if err != nil {
		return err
	}

	resp, err := backend().Register(r.Context(), form[0], form[1], form[2], form[3])

	failure, err := actionFailure(resp, err)
	if err != nil {
		return err
	}

	if failure != "" {
		redirectWithFlash(w, r, "/register", failure)

		return nil
	}

	redirectWithFlash(w, r, "/login", "Registration complete, you can now sign in.")

	return nil
}

func LogoutAction(w http.ResponseWriter, r *http.Request) error {
	session.Clear(w, r)

	redirectWithFlash(w, r, "/home", "Signed out.")

	return nil
}

// UploadAction forwards a multipart upload to the backend.
//
// The optional "name" and "tagId" form fields are passed along with the file.
func UploadAction(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return NewStatusError(http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return NewStatusError(http.StatusBadRequest, "missing form field: file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	body := &requests.MultipartBody{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
		Fields:      map[string]string{},
	}

	for _, field := range []string{"name", "tagId"} {
		if v := utils.GetFormValue(r, field); v != "" {
			body.Fields[field] = v
		}
	}

	resp, err := backend().Upload(r.Context(), body)

	return finishAction(w, r, resp, err, "/profile", "Uploaded "+header.Filename+".")
}

func DeleteAction(w http.ResponseWriter, r *http.Request) error {
	form, err := requireForm(r, fileIDFormat)
	if err != nil {
		return err
	}

	resp, err := backend().DeleteWallpaper(r.Context(), form[0])

	return finishAction(w, r, resp, err, "/profile", "Wallpaper deleted.")
}

func RenameAction(w http.ResponseWriter, r *http.Request) error {
	form, err := requireForm(r, fileIDFormat, "newName")
	if err != nil {
		return err
	}

	resp, err := backend().RenameWallpaper(r.Context(), form[0], form[1])

	return finishAction(w, r, resp, err, "/profile", "Wallpaper renamed to "+form[1]+".")
}

func CollectAction(w http.ResponseWriter, r *http.Request) error {
	form, err := requireForm(r, fileIDFormat)
	if err != nil {
		return err
	}

	resp, err := backend().ToggleFavorite(r.Context(), form[0])

	return finishAction(w, r, resp, err, "/home", "Favorites updated.")
}

// FileAuditAction sets the audit flag of one of the user's own files.
func FileAuditAction(w http.ResponseWriter, r *http.Request) error {
	fileID, audited, err := auditForm(r)
	if err != nil {
		return err
	}

	resp, err := backend().UpdateFileAuditStatus(r.Context(), fileID, audited)

	return finishAction(w, r, resp, err, "/profile", "Review status updated.")
}

func AdminAuditAction(w http.ResponseWriter, r *http.Request) error {
	fileID, audited, err := auditForm(r)
	if err != nil {
		return err
	}

	resp, err := backend().AdminAudit(r.Context(), fileID, audited)

	return finishAction(w, r, resp, err, "/admin", "Review status updated.")
}

func AdminUserStatusAction(w http.ResponseWriter, r *http.Request) error {
	form, err := requireForm(r, userIDFormat, "status")
	if err != nil {
		return err
	}

	status, err := strconv.Atoi(form[1])
	if err != nil {
		return NewStatusError(http.StatusBadRequest, "invalid status: "+form[1])
	}

	resp, err := backend().AdminUserStatus(r.Context(), form[0], status)

	return finishAction(w, r, resp, err, "/admin", "User status updated.")
}

func auditForm(r *http.Request) (string, bool, error) {
	form, err := requireForm(r, fileIDFormat, "audited")
	if err != nil {
		return "", false, err
	}

	audited, err := strconv.ParseBool(form[1])
	if err != nil {
		return "", false, NewStatusError(http.StatusBadRequest, "invalid audited flag: "+form[1])
	}

	return form[0], audited, nil
}
