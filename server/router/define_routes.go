// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/server/assets"
	"codeberg.org/wallfe/wallfe/server/middleware"
	"codeberg.org/wallfe/wallfe/server/routes"
)

// pageRoute is one entry of the page table.
type pageRoute struct {
	Path    string
	Handler func(w http.ResponseWriter, r *http.Request) error
}

// pageRoutes is the static page table.
var pageRoutes = []pageRoute{
	{"/home", routes.HomePage},
	{"/upload", routes.UploadPage},
	{"/login", routes.LoginPage},
	{"/register", routes.RegisterPage},
	{"/profile", routes.ProfilePage},
	{"/admin", routes.AdminPage},
}

// actionRoutes are the POST targets of the forms rendered by the pages.
var actionRoutes = []pageRoute{
	{"/login", routes.LoginAction},
	{"/register", routes.RegisterAction},
	{"/logout", routes.LogoutAction},
	{"/upload", routes.UploadAction},
	{"/delete", routes.DeleteAction},
	{"/rename", routes.RenameAction},
	{"/collect", routes.CollectAction},
	{"/audit", routes.FileAuditAction},
	{"/admin/audit", routes.AdminAuditAction},
	{"/admin/status", routes.AdminUserStatusAction},
}

// homePath is where the root path redirects to.
const homePath = "/home"

// DefineRoutes sets up all the routes for the application using our custom Router.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Serve specific files from the root of the 'assets' subdirectory.
	router.Handle("GET /robots.txt", fileServerHandler)

	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /css/", fileServerHandler)

	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", redirectTo(homePath))

	for _, page := range pageRoutes {
		router.HandleFunc("GET "+page.Path, middleware.CatchError(page.Handler))
	}

	for _, action := range actionRoutes {
		router.HandleFunc("POST "+action.Path, middleware.CatchError(action.Handler))
	}

	// Pass-through routes for backend bytes
	router.HandleFunc("GET /download", middleware.CatchError(routes.Download))
	router.HandleFunc("GET /captcha", middleware.CatchError(routes.CaptchaImage))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}

	// Everything else gets the themed 404 page.
	router.HandleFunc("/", middleware.CatchError(routes.NotFound))
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))
	fileServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Using a strong ETag for static files embedded via go:embed
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		//
		// Since go:embed requires rebuilding when files change, we use a per-instance
		// cache ID to ensure browsers fetch fresh content after any deployment.
		w.Header().Set("ETag", `"`+config.Global.Instance.FileServerCacheID+`"`)
		fileServer.ServeHTTP(w, r)
	})

	return fileServerHandler
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	err := flightRecorder.Start()
	if err != nil {
		panic(err)
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
