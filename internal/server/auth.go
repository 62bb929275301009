package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/glass/internal/pkce"
	"github.com/desertthunder/glass/internal/services"
	"github.com/desertthunder/glass/internal/session"
	"github.com/desertthunder/glass/internal/shared"
)

// homePath is where login, callback and logout send the browser when they are done.
const homePath = "/"

// AuthHandler drives the authorization code + PKCE handshake.
//
// The verifier is the only thing that ties a callback to the login that started it,
// so it is stored server-side and removed as soon as a callback reads it.
type AuthHandler struct {
	provider services.Provider
	sessions *session.Manager
	logger   *log.Logger
}

// NewAuthHandler creates an [AuthHandler].
func NewAuthHandler(provider services.Provider, sessions *session.Manager, logger *log.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, sessions: sessions, logger: logger}
}

// Login stores a fresh verifier and redirects to the provider's authorize endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.For(r)
	if err := sess.Renew(); err != nil {
		h.logger.Error("failed to renew session", "error", err)
		writeError(w, err)
		return
	}

	pair := pkce.New()
	sess.Put(session.KeyCodeVerifier, pair.Verifier)

	http.Redirect(w, r, h.provider.AuthURL(pair), http.StatusFound)
}

// Callback exchanges the authorization code for tokens and stores them in the session.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if reason := query.Get("error"); reason != "" {
		h.logger.Warn("authorization denied", "reason", reason)
		writeErrorDetail(w, shared.ErrProviderDenied, reason)
		return
	}

	sess := h.sessions.For(r)
	code := query.Get("code")
	verifier, _ := sess.GetString(session.KeyCodeVerifier)
	if code == "" || verifier == "" {
		writeError(w, shared.ErrMissingExchangeMaterial)
		return
	}
	sess.Remove(session.KeyCodeVerifier)

	pair, err := h.provider.Exchange(r.Context(), code, verifier)
	if err != nil {
		if xe, ok := services.AsExchangeError(err); ok {
			h.logger.Warn("code exchange rejected", "upstream_status", xe.Status)
		}
		writeError(w, err)
		return
	}

	if err := sess.Renew(); err != nil {
		h.logger.Error("failed to renew session", "error", err)
		writeError(w, err)
		return
	}
	storeTokens(sess, pair, "")

	http.Redirect(w, r, homePath, http.StatusFound)
}

// Logout destroys the session and redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.For(r).Clear(); err != nil {
		h.logger.Error("failed to clear session", "error", err)
		writeError(w, err)
		return
	}
	http.Redirect(w, r, homePath, http.StatusFound)
}

// storeTokens writes pair into sess. An empty refresh token in pair keeps previous.
func storeTokens(sess session.Session, pair *services.TokenPair, previous string) {
	sess.Put(session.KeyAccessToken, pair.AccessToken)
	sess.Put(session.KeyExpiresAt, pair.ExpiresAt.Unix())

	refresh := pair.RefreshToken
	if refresh == "" {
		refresh = previous
	}
	if refresh != "" {
		sess.Put(session.KeyRefreshToken, refresh)
	}
}
