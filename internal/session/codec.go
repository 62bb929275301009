package session

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/desertthunder/glass/internal/shared"
	"github.com/gorilla/securecookie"
)

// codecName binds sealed payloads to this use so they cannot be replayed as another securecookie value.
const codecName = "glass_session"

// Codec implements [scs.Codec]. It gob-encodes the session like [scs.GobCodec] and then seals the
// result with AES-256 and HMAC-SHA256.
type Codec struct {
	sc    *securecookie.SecureCookie
	inner scs.GobCodec
}

// NewCodec derives the hash and block keys from secret.
func NewCodec(secret string) *Codec {
	hashKey := sha256.Sum256([]byte("glass/session/hash:" + secret))
	blockKey := sha256.Sum256([]byte("glass/session/block:" + secret))

	sc := securecookie.New(hashKey[:], blockKey[:])
	// scs enforces the deadline and the stores bound the size.
	sc.MaxAge(0)
	sc.MaxLength(0)

	return &Codec{sc: sc}
}

func (c *Codec) Encode(deadline time.Time, values map[string]interface{}) ([]byte, error) {
	raw, err := c.inner.Encode(deadline, values)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", shared.ErrSessionStore, err)
	}

	sealed, err := c.sc.Encode(codecName, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: seal: %v", shared.ErrSessionStore, err)
	}
	return []byte(sealed), nil
}

func (c *Codec) Decode(b []byte) (time.Time, map[string]interface{}, error) {
	var raw []byte
	if err := c.sc.Decode(codecName, string(b), &raw); err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: open: %v", shared.ErrSessionStore, err)
	}
	return c.inner.Decode(raw)
}
