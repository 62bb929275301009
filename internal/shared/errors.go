package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authorization flow errors
	ErrProviderDenied          = fmt.Errorf("provider denied authorization")
	ErrMissingExchangeMaterial = fmt.Errorf("missing code or verifier")
	ErrTokenExchangeFailed     = fmt.Errorf("token exchange failed")
	ErrRefreshFailed           = fmt.Errorf("token refresh failed")

	// Proxy errors
	ErrNotAuthenticated  = fmt.Errorf("not logged in")
	ErrMissingQuery      = fmt.Errorf("q required")
	ErrUpstreamTransport = fmt.Errorf("upstream request failed")

	// Session errors
	ErrSessionStore = fmt.Errorf("session store unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
