// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"

	"codeberg.org/wallfe/wallfe/core"
	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/core/untrusted"
	"codeberg.org/wallfe/wallfe/server/utils"
)

const (
	returnPathFormat = "returnPath"
	fileIDFormat     = "fileId"
	userIDFormat     = "userId"
	pageFormat       = "page"
)

// backend returns the API used by every handler. Tests replace it.
var backend = core.Default

// currentPage reads a 1-based page number from the query parameter name.
func currentPage(r *http.Request, name string) int {
	return utils.GetPositiveInt(utils.GetQueryParam(r, name), 1)
}

// returnPath returns the sanitized returnPath form value, or fallback.
func returnPath(r *http.Request, fallback string) string {
	if path := utils.SanitizeReturnPath(utils.GetFormValue(r, returnPathFormat)); path != "" {
		return path
	}

	return fallback
}

// redirectWithFlash leaves message for the next page and redirects to target.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	if message != "" {
		untrusted.SetFlash(w, r, message)
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// actionFailure returns the message to flash for a failed backend mutation.
//
// Failures the user cannot act on (transport errors, 401, 5xx) are reported as
// errors instead, so the error handler renders the matching page.
func actionFailure(resp *requests.Response, err error) (string, error) {
	if err == nil && resp != nil {
		err = core.CheckEnvelope(resp.Body)
	}

	if err == nil {
		return "", nil
	}

	if errors.Is(err, core.ErrBackendRejected) {
		return err.Error(), nil
	}

	var apiErr *requests.APIError
	if errors.As(err, &apiErr) &&
		apiErr.StatusCode >= http.StatusBadRequest &&
		apiErr.StatusCode < http.StatusInternalServerError &&
		apiErr.StatusCode != http.StatusUnauthorized {
		return apiErr.Message, nil
	}

	return "", err
}

// finishAction completes a form action: on success it flashes success and
// redirects to the form's return path, on a user-facing failure it flashes
// the backend message instead.
func finishAction(w http.ResponseWriter, r *http.Request, resp *requests.Response, err error, fallback, success string) error {
	failure, err := actionFailure(resp, err)
	if err != nil {
		return err
	}

	message := success
	if failure != "" {
		message = failure
	}

	redirectWithFlash(w, r, returnPath(r, fallback), message)

	return nil
}

// requireForm returns the trimmed values of the named form fields, or a 400
// error naming the first empty one.
func requireForm(r *http.Request, names ...string) ([]string, error) {
	values := make([]string, len(names))

	for i, name := range names {
		values[i] = utils.GetFormValue(r, name)
		if values[i] == "" {
			return nil, NewStatusError(http.StatusBadRequest, "missing form field: "+name)
		}
	}

	return values, nil
}
