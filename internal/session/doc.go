// Package session scopes browser session state to a single request.
//
// [Manager] wraps an scs session manager. Its [Manager.Middleware] loads the session named by the
// cookie before the handler runs and commits it afterwards; handlers reach the loaded state through
// [Manager.For], which returns a [Session] bound to the request context.
//
// # Keys
//
// The OAuth flow uses four keys: [KeyCodeVerifier] while a login is in flight, then
// [KeyAccessToken], [KeyRefreshToken] and [KeyExpiresAt] (unix seconds) once it completes.
// Values are limited to strings and int64 so every store round-trips them through gob.
//
// # Storage
//
// [NewStore] picks the backend named by the configuration: the scs memory store, or one of the
// repositories package stores for SQLite and Redis. Whatever the backend, the payload is sealed by
// [Codec] with keys derived from the session secret, so tokens at rest are encrypted and a tampered
// record fails to load.
package session
