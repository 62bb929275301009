package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/glass/internal/services"
	"github.com/desertthunder/glass/internal/session"
	"github.com/desertthunder/glass/internal/shared"
)

// RefreshSkew is how long before expiry a token is refreshed.
const RefreshSkew = 30 * time.Second

// Upstream resources.
const (
	pathNowPlaying = "/me/player/currently-playing"
	pathRecent     = "/me/player/recently-played"
	pathPlaylists  = "/me/playlists"
	pathSearch     = "/search"
)

// Outcome says which of the three ways a proxied call ended.
type Outcome int

const (
	// Unauthenticated: the session had no access token, so nothing was sent upstream.
	Unauthenticated Outcome = iota
	// Relayed: the provider answered. Any status, including errors, is in Response.
	Relayed
	// TransportFailed: the request never produced a response. Err says why.
	TransportFailed
)

// Result is the outcome of [Proxy.ProxyGet].
type Result struct {
	Outcome  Outcome
	Response *services.APIResponse
	Err      error
}

// Proxy forwards browser requests to the provider API with the session's bearer token.
type Proxy struct {
	provider services.Provider
	sessions *session.Manager
	logger   *log.Logger
	now      func() time.Time
}

// NewProxy creates a [Proxy]. A nil now uses [time.Now].
func NewProxy(provider services.Provider, sessions *session.Manager, logger *log.Logger, now func() time.Time) *Proxy {
	if now == nil {
		now = time.Now
	}
	return &Proxy{provider: provider, sessions: sessions, logger: logger, now: now}
}

// Routes returns the HTTP routes this handler serves.
func (p *Proxy) Routes() []string {
	return []string{
		"GET /api/now_playing",
		"GET /api/recent",
		"GET /api/playlists",
		"GET /api/search",
	}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/now_playing":
		p.NowPlaying(w, r)
	case "/api/recent":
		p.Recent(w, r)
	case "/api/playlists":
		p.Playlists(w, r)
	case "/api/search":
		p.Search(w, r)
	default:
		http.NotFound(w, r)
	}
}

// NowPlaying relays the currently playing item. Nothing playing (204) becomes {"playing": false}.
func (p *Proxy) NowPlaying(w http.ResponseWriter, r *http.Request) {
	result := p.ProxyGet(r.Context(), p.sessions.For(r), pathNowPlaying, nil)
	if result.Outcome == Relayed && result.Response.StatusCode == http.StatusNoContent {
		writeJSON(w, http.StatusOK, map[string]bool{"playing": false})
		return
	}
	p.relay(w, result)
}

// Recent relays the last 8 played tracks.
func (p *Proxy) Recent(w http.ResponseWriter, r *http.Request) {
	p.relay(w, p.ProxyGet(r.Context(), p.sessions.For(r), pathRecent, url.Values{"limit": {"8"}}))
}

// Playlists relays the first 20 of the user's playlists.
func (p *Proxy) Playlists(w http.ResponseWriter, r *http.Request) {
	p.relay(w, p.ProxyGet(r.Context(), p.sessions.For(r), pathPlaylists, url.Values{"limit": {"20"}}))
}

// Search relays a track, artist and album search for q.
func (p *Proxy) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, shared.ErrMissingQuery)
		return
	}

	params := url.Values{
		"q":     {q},
		"type":  {"track,artist,album"},
		"limit": {"12"},
	}
	p.relay(w, p.ProxyGet(r.Context(), p.sessions.For(r), pathSearch, params))
}

// EnsureFreshToken refreshes the access token when it expires within [RefreshSkew] or has no
// recorded expiry. It needs a refresh token to do anything.
//
// A failed refresh leaves the current token in place; the provider's own 401 then reaches
// the browser. It reports whether a new token was stored.
func (p *Proxy) EnsureFreshToken(ctx context.Context, sess session.Session) bool {
	refresh, ok := sess.GetString(session.KeyRefreshToken)
	if !ok || refresh == "" {
		return false
	}

	if expiresAt, ok := sess.GetInt64(session.KeyExpiresAt); ok {
		if p.now().Before(time.Unix(expiresAt, 0).Add(-RefreshSkew)) {
			return false
		}
	}

	pair, err := p.provider.Refresh(ctx, refresh)
	if err != nil {
		p.logger.Warn("token refresh failed, keeping current token", "error", err)
		return false
	}

	storeTokens(sess, pair, refresh)
	p.logger.Debug("token refreshed", "expires_at", pair.ExpiresAt)
	return true
}

// ProxyGet refreshes the token if needed and performs an authenticated GET against the provider.
func (p *Proxy) ProxyGet(ctx context.Context, sess session.Session, path string, params url.Values) Result {
	p.EnsureFreshToken(ctx, sess)

	token, ok := sess.GetString(session.KeyAccessToken)
	if !ok || token == "" {
		return Result{Outcome: Unauthenticated, Err: shared.ErrNotAuthenticated}
	}

	resp, err := p.provider.Get(ctx, token, path, params)
	if err != nil {
		return Result{Outcome: TransportFailed, Err: err}
	}
	return Result{Outcome: Relayed, Response: resp}
}

// relay writes result to the browser. Upstream responses pass through with their status and body.
func (p *Proxy) relay(w http.ResponseWriter, result Result) {
	switch result.Outcome {
	case Unauthenticated:
		writeError(w, result.Err)
	case TransportFailed:
		p.logger.Warn("upstream request failed", "error", result.Err)
		writeError(w, result.Err)
	default:
		resp := result.Response
		w.Header().Set("Content-Type", resp.ContentType())
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
	}
}
