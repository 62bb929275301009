// package server contains the router, middleware and handlers for the glass web service
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows its own routes.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the method-qualified patterns this handler serves, e.g. "GET /api/recent"
}

// Router defines HTTP routing and middleware management.
type Router interface {
	// Use adds middleware applied to every request.
	Use(middleware ...Middleware)
	// Handle registers a handler with optional per-route middleware.
	Handle(method, path string, handler http.Handler, mw ...Middleware)
	// Handler registers every route of a [Handler].
	Handler(handler Handler, mw ...Middleware)
	// ServeHTTP implements http.Handler for the entire router.
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
