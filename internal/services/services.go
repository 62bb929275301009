// Package services: provider contract and token types.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/desertthunder/glass/internal/pkce"
	"github.com/desertthunder/glass/internal/shared"
)

// DefaultExpiresIn is assumed when a token response omits expires_in.
const DefaultExpiresIn = 3600 * time.Second

// Provider is an OAuth 2.0 authorization server paired with the bearer-token REST API it protects.
type Provider interface {
	// AuthURL builds the authorize redirect carrying the PKCE challenge.
	AuthURL(pair pkce.Pair) string

	// Exchange trades an authorization code and its verifier for a token pair.
	// Failures unwrap to [shared.ErrTokenExchangeFailed]; see [ExchangeError].
	Exchange(ctx context.Context, code, verifier string) (*TokenPair, error)

	// Refresh obtains a new access token with the refresh_token grant.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Get issues an authenticated GET against the API. A non-2xx status is not an error;
	// only transport failures are, and they unwrap to [shared.ErrUpstreamTransport].
	Get(ctx context.Context, accessToken, path string, params url.Values) (*APIResponse, error)
}

// TokenPair is what the session keeps from a token response.
//
// AccessToken must never reach the browser or a log line.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ExchangeError describes a rejected authorization code exchange.
type ExchangeError struct {
	// Status is the upstream HTTP status, or 0 when no response was received.
	Status int
	// Body is the raw upstream response body, or the transport error text.
	Body string
}

func (e *ExchangeError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%v: %s", shared.ErrTokenExchangeFailed, e.Body)
	}
	return fmt.Sprintf("%v: status %d: %s", shared.ErrTokenExchangeFailed, e.Status, e.Body)
}

func (e *ExchangeError) Unwrap() error {
	return shared.ErrTokenExchangeFailed
}

// AsExchangeError extracts an [ExchangeError] from err.
func AsExchangeError(err error) (*ExchangeError, bool) {
	var xe *ExchangeError
	ok := errors.As(err, &xe)
	return xe, ok
}
