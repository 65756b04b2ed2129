// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-onboard/internal/app"
	"github.com/MKhiriev/go-onboard/internal/utils"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 Method Not Allowed when a path matches but the method does
// not. This handler answers 404 Not Found instead, hiding the route from
// callers that use an unsupported method. Requests whose method IS
// registered for the exact path (including routes mounted in sub-routers)
// are forwarded to the router.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if routeHasMethod(router, r.URL.Path, r.Method) {
			router.ServeHTTP(w, r)
			return
		}

		apiNotFound(w, r)
	}
}

func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteResponse(w, http.StatusNotFound, app.MsgAPINotFound, nil)
}

func routeHasMethod(router chi.Routes, path, method string) bool {
	found := false
	_ = chi.Walk(router, func(m, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == path && m == method {
			found = true
		}
		return nil
	})
	return found
}
