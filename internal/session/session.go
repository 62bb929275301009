package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/desertthunder/glass/internal/shared"
)

// Session keys.
const (
	KeyCodeVerifier = "code_verifier"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyExpiresAt    = "token_expires_at"
)

const (
	DefaultCookieName = "glass_session"
	DefaultLifetime   = 24 * time.Hour
)

// Session is the per-request view of one browser session.
type Session interface {
	// GetString returns the string stored under key. ok is false when the key is absent or holds another type.
	GetString(key string) (string, bool)
	// GetInt64 returns the int64 stored under key.
	GetInt64(key string) (int64, bool)
	// Put stores a string or int64 value.
	Put(key string, value any)
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)
	// Renew issues a new session token, keeping the data.
	Renew() error
	// Clear drops every key and deletes the session from the store.
	Clear() error
}

// Manager issues request-scoped sessions backed by an scs session manager.
type Manager struct {
	scs *scs.SessionManager
}

// NewManager creates a [Manager] storing sessions in store.
//
// secure sets the Secure cookie attribute and should match whether the server terminates TLS.
// Payloads are sealed with a [Codec] keyed by cfg.Secret.
func NewManager(cfg shared.SessionConfig, secure bool, store scs.Store) *Manager {
	sm := scs.New()
	sm.Store = store
	sm.Codec = NewCodec(cfg.Secret)

	sm.Lifetime = cfg.Lifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = DefaultLifetime
	}

	sm.Cookie.Name = cfg.CookieName
	if sm.Cookie.Name == "" {
		sm.Cookie.Name = DefaultCookieName
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	sm.Cookie.Persist = true
	sm.Cookie.Path = "/"

	return &Manager{scs: sm}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.scs.Cookie.Name
}

// Middleware loads the session for each request and commits changes before the response is written.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(next)
}

// For returns the session loaded for r. r must have passed through [Manager.Middleware].
func (m *Manager) For(r *http.Request) Session {
	return &scsSession{sm: m.scs, ctx: r.Context()}
}

type scsSession struct {
	sm  *scs.SessionManager
	ctx context.Context
}

func (s *scsSession) GetString(key string) (string, bool) {
	v, ok := s.sm.Get(s.ctx, key).(string)
	return v, ok
}

func (s *scsSession) GetInt64(key string) (int64, bool) {
	v, ok := s.sm.Get(s.ctx, key).(int64)
	return v, ok
}

func (s *scsSession) Put(key string, value any) {
	s.sm.Put(s.ctx, key, value)
}

func (s *scsSession) Remove(key string) {
	s.sm.Remove(s.ctx, key)
}

func (s *scsSession) Renew() error {
	return s.sm.RenewToken(s.ctx)
}

func (s *scsSession) Clear() error {
	return s.sm.Destroy(s.ctx)
}
