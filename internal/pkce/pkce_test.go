package pkce

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("challenge matches verifier", func(t *testing.T) {
		for i := 0; i < 64; i++ {
			p := New()
			sum := sha256.Sum256([]byte(p.Verifier))
			want := base64.RawURLEncoding.EncodeToString(sum[:])

			if p.Challenge != want {
				t.Fatalf("challenge %q does not match sha256 of verifier, want %q", p.Challenge, want)
			}
			if strings.Contains(p.Challenge, "=") {
				t.Fatalf("challenge must not be padded: %q", p.Challenge)
			}
		}
	})

	t.Run("verifier is valid", func(t *testing.T) {
		p := New()
		if !ValidVerifier(p.Verifier) {
			t.Errorf("generated verifier %q is not valid", p.Verifier)
		}
	})

	t.Run("pairs are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 32; i++ {
			v := New().Verifier
			if seen[v] {
				t.Fatalf("verifier repeated: %q", v)
			}
			seen[v] = true
		}
	})
}

func TestChallenge(t *testing.T) {
	t.Run("RFC 7636 appendix B", func(t *testing.T) {
		verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
		want := "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"

		if got := Challenge(verifier); got != want {
			t.Errorf("Challenge() = %q, want %q", got, want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		p := New()
		if Challenge(p.Verifier) != Challenge(p.Verifier) {
			t.Error("re-deriving the challenge should be deterministic")
		}
		if Challenge(p.Verifier) != p.Challenge {
			t.Error("re-derived challenge differs from the generated one")
		}
	})
}

func TestVerify(t *testing.T) {
	p := New()

	tc := []struct {
		name      string
		verifier  string
		challenge string
		want      bool
	}{
		{name: "matching pair", verifier: p.Verifier, challenge: p.Challenge, want: true},
		{name: "other verifier", verifier: New().Verifier, challenge: p.Challenge, want: false},
		{name: "plain method", verifier: p.Verifier, challenge: p.Verifier, want: false},
		{name: "empty verifier", verifier: "", challenge: p.Challenge, want: false},
		{name: "empty challenge", verifier: p.Verifier, challenge: "", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.verifier, tt.challenge); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidVerifier(t *testing.T) {
	tc := []struct {
		name string
		v    string
		want bool
	}{
		{name: "minimum length", v: strings.Repeat("a", 43), want: true},
		{name: "maximum length", v: strings.Repeat("Z", 128), want: true},
		{name: "too short", v: strings.Repeat("a", 42), want: false},
		{name: "too long", v: strings.Repeat("a", 129), want: false},
		{name: "unreserved punctuation", v: strings.Repeat("-._~", 11), want: true},
		{name: "reserved character", v: strings.Repeat("a", 42) + "+", want: false},
		{name: "padding", v: strings.Repeat("a", 42) + "=", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidVerifier(tt.v); got != tt.want {
				t.Errorf("ValidVerifier(%q) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
