// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"slices"

	"codeberg.org/wallfe/wallfe/server/middleware"
)

// Router is the WallFE route table behind a middleware chain.
//
// Routes are registered on the embedded ServeMux. Requests reach it only after
// passing every middleware added with Use, in the order they were added.
type Router struct {
	*http.ServeMux

	middlewares []middleware.Middleware
	chain       http.Handler
}

// NewRouter creates a new Router instance without routes or middleware.
func NewRouter() *Router {
	mux := http.NewServeMux()

	return &Router{
		ServeMux: mux,
		chain:    mux,
	}
}

// New creates the application router: the route table wrapped in the middleware chain.
func New() *Router {
	router := NewRouter()
	router.DefineRoutes()
	router.RegisterMiddleware()

	return router
}

// Use appends m to the chain. Not safe to call once the router is serving.
func (router *Router) Use(m middleware.Middleware) {
	router.middlewares = append(router.middlewares, m)

	var chain http.Handler = router.ServeMux
	for _, mw := range slices.Backward(router.middlewares) {
		chain = middleware.Wrap(mw, chain)
	}

	router.chain = chain
}

func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.chain.ServeHTTP(w, r)
}
