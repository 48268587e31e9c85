// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/server/request_context"
	"codeberg.org/wallfe/wallfe/server/routes"
)

// createTestRequest creates a test HTTP request with request context.
func createTestRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	return req.WithContext(request_context.WithRequestContext(req.Context(), req))
}

func TestCatchError_Success(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("X-Test", "1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status": "success"}`))

		return nil
	})
	req := createTestRequest(t, "/test")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-Test"))
	assert.JSONEq(t, `{"status": "success"}`, rr.Body.String())
	assert.NoError(t, request_context.FromRequest(req).RequestError)
}

func TestCatchError_Statuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		written    int
		wantStatus int
		wantBody   string
	}{
		{
			name:       "plain error",
			err:        errors.New("test handler error"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "test handler error",
		},
		{
			name:       "status error",
			err:        routes.NewStatusError(http.StatusBadRequest, "missing form field: fileId"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "missing form field: fileId",
		},
		{
			name:       "backend status is passed on",
			err:        fmt.Errorf("listing: %w", &requests.APIError{StatusCode: http.StatusForbidden, Message: "forbidden"}),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "backend 401 prompts sign in",
			err:        &requests.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "loginReturnPath=%2Fprofile%3Fpage%3D2",
		},
		{
			name:       "unauthorized error",
			err:        routes.NewUnauthorizedError("/home", "/upload"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "loginReturnPath=%2Fupload",
		},
		{
			name:       "transport error",
			err:        &requests.APIError{Err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "not found written by handler",
			written:    http.StatusNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "404 Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := CatchError(func(w http.ResponseWriter, _ *http.Request) error {
				if tt.written != 0 {
					w.WriteHeader(tt.written)
					_, _ = w.Write([]byte("raw body"))
				}

				return tt.err
			})

			req := createTestRequest(t, "/profile?page=2")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus, request_context.FromRequest(req).StatusCode)
			assert.NotContains(t, rr.Body.String(), "raw body")

			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}

			if tt.err != nil {
				assert.ErrorIs(t, request_context.FromRequest(req).RequestError, tt.err)
			}
		})
	}
}

func TestCatchError_KeepsEarlierCookies(t *testing.T) {
	t.Parallel()

	handler := CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		http.SetCookie(w, &http.Cookie{Name: "Session", Value: "sealed"})
		w.Header().Set("Cache-Control", "no-store")

		return nil
	})

	rr := httptest.NewRecorder()
	http.SetCookie(rr, &http.Cookie{Name: "Flash", Value: ""})
	rr.Header().Set("Cache-Control", "private, no-cache")

	handler.ServeHTTP(rr, createTestRequest(t, "/captcha"))

	assert.Len(t, rr.Result().Cookies(), 2)
	assert.Equal(t, []string{"no-store"}, rr.Header().Values("Cache-Control"))
}
