package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/glass/internal/services"
	"github.com/desertthunder/glass/internal/session"
	"github.com/desertthunder/glass/internal/shared"
	"github.com/desertthunder/glass/internal/web"
	"golang.org/x/time/rate"
)

// Options are the collaborators [New] wires into the router.
type Options struct {
	Config   *shared.Config
	Provider services.Provider
	Sessions *session.Manager
	Logger   *log.Logger
	// Now is the clock used for refresh decisions. Defaults to [time.Now].
	Now func() time.Time
}

// New builds the application router:
//
//	GET /                  home view
//	GET /static/           embedded assets (no session)
//	GET /login, /callback  handshake, throttled per client IP
//	GET /logout
//	GET /api/*             authenticated proxy
func New(opts Options) (*BasicRouter, error) {
	if opts.Config == nil || opts.Provider == nil || opts.Sessions == nil {
		return nil, errors.New("server: config, provider and sessions are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(RequestLogger(logger), Recoverer(logger))

	withSession := Middleware(opts.Sessions.Middleware)
	authMW := []Middleware{withSession}
	if cfg := opts.Config.Server; cfg.AuthRate > 0 {
		throttle := NewThrottle(rate.Limit(cfg.AuthRate), cfg.AuthBurst)
		authMW = []Middleware{throttle.Middleware, withSession}
	}

	auth := NewAuthHandler(opts.Provider, opts.Sessions, shared.WithLogger(logger, "component", "auth"))
	router.Handle(http.MethodGet, "/login", http.HandlerFunc(auth.Login), authMW...)
	router.Handle(http.MethodGet, "/callback", http.HandlerFunc(auth.Callback), authMW...)
	router.Handle(http.MethodGet, "/logout", http.HandlerFunc(auth.Logout), withSession)

	proxy := NewProxy(opts.Provider, opts.Sessions, shared.WithLogger(logger, "component", "proxy"), opts.Now)
	router.Handler(proxy, withSession)

	home := web.NewHomeHandler(func(r *http.Request) bool {
		token, ok := opts.Sessions.For(r).GetString(session.KeyAccessToken)
		return ok && token != ""
	}, logger)
	router.Handler(home, withSession)
	router.Handle(http.MethodGet, web.StaticPrefix, web.StaticHandler())

	return router, nil
}
