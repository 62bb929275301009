// Package server provides HTTP routing, middleware, and the two request-facing components of glass:
// the authorization handshake and the authenticated proxy.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] uses
// [http.ServeMux] with method-qualified patterns ("GET /login"), so a wrong method gets a 405
// from the mux. Global [Middleware] registered with Use wraps the whole mux; per-route middleware
// is passed to Handle or Handler. The first middleware in a list is the outermost.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Authorization Handshake
//
// [AuthHandler] implements login, callback and logout. Login renews the session token, stores a fresh
// PKCE verifier and redirects to the provider. Callback checks for a provider error, then for a code
// and a stored verifier, removes the verifier, exchanges the code and stores the token pair.
//
// # Authenticated Proxy
//
// [Proxy] serves /api/now_playing, /api/recent, /api/playlists and /api/search. Before each call it
// runs [Proxy.EnsureFreshToken], then [Proxy.ProxyGet] returns a [Result] that keeps apart a missing
// session token, a relayed upstream response and a transport failure.
//
// # Errors
//
// Locally generated errors are JSON objects with an "error" field:
//   - 400 : provider denied, missing code or verifier, token exchange failed, missing q
//   - 401 : no access token in the session
//   - 429 : too many login or callback requests from one client
//   - 502 : the provider could not be reached
//
// Upstream responses are relayed with their own status and body.
package server
