// Package services defines the [Provider] interface for the upstream music service and implements it for Spotify.
//
// # Provider Interface
//
// A provider is two things at once: an OAuth 2.0 authorization server (authorize and token endpoints)
// and the REST API its bearer tokens unlock. Handlers in the server package only see [Provider],
// so tests swap in an httptest fake through the endpoint settings in [shared.ProviderConfig].
//
// # Spotify Implementation
//
// [SpotifyService] is a public client: it never holds a client secret. The authorization code is
// bound to a PKCE verifier instead (see the pkce package), sent with [oauth2.VerifierOption] on exchange.
//
// The service is stateless. Tokens live in the caller's session and are passed in on every call,
// so a single [SpotifyService] is shared by all requests.
//
// # Token Expiry
//
// Exchange and Refresh return an absolute [TokenPair.ExpiresAt] computed from the raw expires_in
// against the service clock, defaulting to [DefaultExpiresIn] when the field is absent.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrTokenExchangeFailed] : code exchange rejected, carried by [ExchangeError]
//   - [shared.ErrRefreshFailed] : refresh_token grant rejected or unreachable
//   - [shared.ErrUpstreamTransport] : API request never produced a response
//
// A non-2xx API response is not an error. [Provider.Get] returns it as an [APIResponse] so the
// status and body can be relayed to the browser unchanged.
package services
