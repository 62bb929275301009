// Spotify implementation of [Provider]
//
// Endpoints: https://developer.spotify.com/documentation/web-api/tutorials/code-pkce-flow
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/glass/internal/pkce"
	"github.com/desertthunder/glass/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/spotify"
)

const (
	spotifyBaseURL     = "https://api.spotify.com/v1"
	defaultRedirectURI = "http://localhost:5000/callback"
)

// DefaultScopes is requested when the configuration lists none.
var DefaultScopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-private",
	"user-read-recently-played",
	"playlist-read-private",
}

// SpotifyService implements [Provider] for the Spotify accounts service and Web API.
//
// It holds no tokens: callers pass them in from the session on every call.
type SpotifyService struct {
	config     *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
	now        func() time.Time
}

// NewSpotifyService creates a Spotify provider for a public (PKCE) client.
//
// Empty endpoint fields in p fall back to the Spotify defaults. A nil client uses [http.DefaultClient].
func NewSpotifyService(creds shared.SpotifyConfig, p shared.ProviderConfig, client *http.Client) (*SpotifyService, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	scopes := creds.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	endpoint := spotify.Endpoint
	if p.AuthURL != "" {
		endpoint.AuthURL = p.AuthURL
	}
	if p.TokenURL != "" {
		endpoint.TokenURL = p.TokenURL
	}
	// Public client: client_id goes in the form body, there is no secret for basic auth.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	apiBaseURL := p.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = spotifyBaseURL
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &SpotifyService{
		config: &oauth2.Config{
			ClientID:    creds.ClientID,
			RedirectURL: redirectURI,
			Scopes:      scopes,
			Endpoint:    endpoint,
		},
		apiBaseURL: apiBaseURL,
		httpClient: client,
		now:        time.Now,
	}, nil
}

// SetClock replaces the time source used to compute token expiry.
func (s *SpotifyService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the authorize URL with the S256 challenge and show_dialog=true,
// which forces the consent screen on every login.
func (s *SpotifyService) AuthURL(pair pkce.Pair) string {
	return s.config.AuthCodeURL("",
		oauth2.SetAuthURLParam("code_challenge_method", pkce.MethodS256),
		oauth2.SetAuthURLParam("code_challenge", pair.Challenge),
		oauth2.SetAuthURLParam("show_dialog", "true"),
	)
}

// Exchange performs the authorization_code grant with the stored verifier.
func (s *SpotifyService) Exchange(ctx context.Context, code, verifier string) (*TokenPair, error) {
	token, err := s.config.Exchange(s.clientContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, exchangeError(err)
	}
	return s.tokenPair(token), nil
}

// Refresh performs the refresh_token grant.
//
// When the provider does not rotate the refresh token the one passed in is kept.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", shared.ErrRefreshFailed)
	}

	src := s.config.TokenSource(s.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return nil, fmt.Errorf("%w: status %d", shared.ErrRefreshFailed, rErr.Response.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	return s.tokenPair(token), nil
}

// Get performs an authenticated GET against the Web API.
func (s *SpotifyService) Get(ctx context.Context, accessToken, path string, params url.Values) (*APIResponse, error) {
	return bearerGet(ctx, s.httpClient, s.apiBaseURL, accessToken, path, params)
}

func (s *SpotifyService) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

// tokenPair computes the absolute expiry from the raw expires_in against the service clock.
func (s *SpotifyService) tokenPair(token *oauth2.Token) *TokenPair {
	return &TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    s.now().Add(expiresIn(token)),
	}
}

func expiresIn(token *oauth2.Token) time.Duration {
	var seconds int64
	switch v := token.Extra("expires_in").(type) {
	case float64:
		seconds = int64(v)
	case int64:
		seconds = v
	case string:
		seconds, _ = strconv.ParseInt(v, 10, 64)
	}

	if seconds <= 0 {
		return DefaultExpiresIn
	}
	return time.Duration(seconds) * time.Second
}

func exchangeError(err error) *ExchangeError {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		xe := &ExchangeError{Body: string(rErr.Body)}
		if rErr.Response != nil {
			xe.Status = rErr.Response.StatusCode
		}
		return xe
	}
	return &ExchangeError{Body: err.Error()}
}
