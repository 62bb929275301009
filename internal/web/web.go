// Package web serves the browser front-end: a single server-rendered page and its static assets.
//
// # Templates
//
// index.html is parsed once from the embedded filesystem. The only data it receives is [Page],
// which says whether the visitor has a session token. No token value is ever handed to a template.
//
// # Static Assets
//
// script.js and style.css are served from the embedded static directory under /static/.
// The script talks to the JSON endpoints under /api and never sees credentials: the server
// attaches the bearer token on the way out.
//
// Routes
//
//	GET  /          → home view, login or logout button depending on session state
//	GET  /static/*  → embedded assets
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/charmbracelet/log"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// StaticPrefix is the URL prefix assets are served under.
const StaticPrefix = "/static/"

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// Page is the data passed to index.html.
type Page struct {
	LoggedIn bool
}

// HomeHandler renders the home view.
type HomeHandler struct {
	loggedIn func(*http.Request) bool
	logger   *log.Logger
}

// NewHomeHandler creates a [HomeHandler]. loggedIn reports whether the request's session holds a token.
func NewHomeHandler(loggedIn func(*http.Request) bool, logger *log.Logger) *HomeHandler {
	return &HomeHandler{loggedIn: loggedIn, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *HomeHandler) Routes() []string {
	return []string{"GET /{$}"}
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html", Page{LoggedIn: h.loggedIn(r)}); err != nil {
		h.logger.Error("failed to render home", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// StaticHandler serves the embedded assets. Mount it at [StaticPrefix].
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix(StaticPrefix, http.FileServerFS(sub))
}
