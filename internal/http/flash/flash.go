package flash

import (
	"errors"
	"strings"
	"time"

	"shopfront.dev/app/internal/http/signed"
	"shopfront.dev/app/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

// Codec signs one-shot flash messages carried across a redirect.
type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure}
}

func (c *Codec) Encode(f view.Flash) (string, error) {
	return signed.Encode(c.Secret, f)
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	var f view.Flash
	if err := signed.Decode(c.Secret, v, &f); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	return &f, nil
}

// CookieMaxAge is short: the flash only has to survive one redirect.
func (c *Codec) CookieMaxAge() int {
	return int((2 * time.Minute).Seconds())
}
