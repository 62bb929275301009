package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/glass/internal/shared"
)

// APIResponse is an upstream response held in memory so it can be relayed verbatim.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// ContentType returns the upstream Content-Type, defaulting to JSON.
func (a *APIResponse) ContentType() string {
	if ct := a.Headers.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/json"
}

// bearerGet performs a GET to baseURL+path with the access token in the Authorization header.
func bearerGet(ctx context.Context, client *http.Client, baseURL, accessToken, path string, params url.Values) (*APIResponse, error) {
	fullURL := strings.TrimRight(baseURL, "/") + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrUpstreamTransport, err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
