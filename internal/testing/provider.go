package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Paths served by [FakeProvider].
const (
	FakeAuthorizePath = "/authorize"
	FakeTokenPath     = "/api/token"
	FakeAPIPrefix     = "/v1"
)

// Request is one call received by the fake provider.
type Request struct {
	Kind          string // "token" or "api"
	Path          string
	Query         url.Values
	Form          url.Values
	Authorization string
}

// Grant returns the grant_type of a token request.
func (r Request) Grant() string {
	return r.Form.Get("grant_type")
}

// FakeProvider is an httptest server standing in for the OAuth server and the Web API.
//
// Token responses default to a 200 with fixed tokens; API responses default to 200 "{}".
type FakeProvider struct {
	Server *httptest.Server

	mu            sync.Mutex
	requests      []Request
	tokenStatus   int
	tokenBody     string
	refreshStatus int
	refreshBody   string
	api           map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

// NewFakeProvider starts a fake provider that is closed with the test.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()

	f := &FakeProvider{
		tokenStatus:   http.StatusOK,
		tokenBody:     `{"access_token":"access-1","token_type":"Bearer","refresh_token":"refresh-1","expires_in":3600}`,
		refreshStatus: http.StatusOK,
		refreshBody:   `{"access_token":"access-2","token_type":"Bearer","expires_in":3600}`,
		api:           map[string]fakeResponse{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(FakeTokenPath, f.serveToken)
	mux.HandleFunc(FakeAPIPrefix+"/", f.serveAPI)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)

	return f
}

// AuthURL, TokenURL and APIBaseURL are the endpoints to configure a provider client with.
func (f *FakeProvider) AuthURL() string    { return f.Server.URL + FakeAuthorizePath }
func (f *FakeProvider) TokenURL() string   { return f.Server.URL + FakeTokenPath }
func (f *FakeProvider) APIBaseURL() string { return f.Server.URL + FakeAPIPrefix }

// SetToken sets the response to authorization_code grants.
func (f *FakeProvider) SetToken(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenStatus, f.tokenBody = status, body
}

// SetRefresh sets the response to refresh_token grants.
func (f *FakeProvider) SetRefresh(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshStatus, f.refreshBody = status, body
}

// SetAPI sets the response for an API path relative to the API base, e.g. "/me/playlists".
func (f *FakeProvider) SetAPI(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.api[path] = fakeResponse{status: status, body: body}
}

// Requests returns a copy of every request received, in order.
func (f *FakeProvider) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns the number of token requests with the given grant, or API requests when grant is "api".
func (f *FakeProvider) Count(grant string) int {
	n := 0
	for _, r := range f.Requests() {
		if (grant == "api" && r.Kind == "api") || (r.Kind == "token" && r.Grant() == grant) {
			n++
		}
	}
	return n
}

// Trace renders the request sequence as "token:<grant>" and "api:<path>" entries.
func (f *FakeProvider) Trace() []string {
	var out []string
	for _, r := range f.Requests() {
		if r.Kind == "token" {
			out = append(out, "token:"+r.Grant())
		} else {
			out = append(out, "api:"+r.Path)
		}
	}
	return out
}

func (f *FakeProvider) record(r Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)
}

func (f *FakeProvider) serveToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.record(Request{Kind: "token", Path: r.URL.Path, Form: r.PostForm})

	f.mu.Lock()
	status, body := f.tokenStatus, f.tokenBody
	if r.PostForm.Get("grant_type") == "refresh_token" {
		status, body = f.refreshStatus, f.refreshBody
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func (f *FakeProvider) serveAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, FakeAPIPrefix)
	f.record(Request{
		Kind:          "api",
		Path:          path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
	})

	f.mu.Lock()
	resp, ok := f.api[path]
	f.mu.Unlock()
	if !ok {
		resp = fakeResponse{status: http.StatusOK, body: "{}"}
	}

	if resp.status == http.StatusNoContent {
		w.WriteHeader(resp.status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	fmt.Fprint(w, resp.body)
}

// MustJSON decodes body into a generic map or fails the test.
func MustJSON(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to decode JSON %q: %v", body, err)
	}
	return out
}
