// Package pkce generates and checks Proof Key for Code Exchange material (RFC 7636).
//
// A [Pair] is created per login attempt. The verifier stays server-side in the session;
// only the challenge travels to the provider's authorize endpoint.
package pkce

import (
	"crypto/subtle"

	"golang.org/x/oauth2"
)

// MethodS256 is the only challenge method this package produces.
const MethodS256 = "S256"

// Verifier length bounds from RFC 7636 section 4.1.
const (
	MinVerifierLength = 43
	MaxVerifierLength = 128
)

// Pair holds a code verifier and the challenge derived from it.
type Pair struct {
	Verifier  string
	Challenge string
}

// New returns a fresh pair. The verifier carries 32 bytes of entropy, base64url encoded without padding.
func New() Pair {
	verifier := oauth2.GenerateVerifier()
	return Pair{Verifier: verifier, Challenge: Challenge(verifier)}
}

// Challenge derives base64url_no_pad(SHA256(verifier)).
func Challenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}

// Verify reports whether challenge was derived from verifier.
func Verify(verifier, challenge string) bool {
	if verifier == "" || challenge == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Challenge(verifier)), []byte(challenge)) == 1
}

// ValidVerifier reports whether v has an allowed length and only unreserved characters.
func ValidVerifier(v string) bool {
	if len(v) < MinVerifierLength || len(v) > MaxVerifierLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !unreserved(v[i]) {
			return false
		}
	}
	return true
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
