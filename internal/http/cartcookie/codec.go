package cartcookie

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront.dev/app/internal/http/signed"
	"shopfront.dev/app/internal/modules/cart"
)

// MaxCookieBytes bounds name=value of the cart cookie. Browsers drop
// cookies past about 4 KB without telling the server.
const MaxCookieBytes = 4000

var (
	ErrInvalid         = errors.New("invalid cart cookie")
	ErrInvalidSnapshot = errors.New("invalid product snapshot")
	ErrTooLarge        = errors.New("cart does not fit in a cookie")
)

// Codec keeps the page-local cart in a signed session cookie. Nothing about
// the cart is stored server side, and it ends with the browser session.
type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

func (c *Codec) Encode(ct *cart.Cart) (string, error) {
	return signed.Encode(c.Secret, ct)
}

func (c *Codec) Decode(v string) (*cart.Cart, error) {
	ct := cart.New()
	if err := signed.Decode(c.Secret, v, ct); err != nil {
		return nil, ErrInvalid
	}
	ct.Normalize()
	return ct, nil
}

// Get returns the request's cart, or an empty one. A cookie that fails
// verification is cleared.
func (c *Codec) Get(ctx *gin.Context) *cart.Cart {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return cart.New()
	}
	ct, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return cart.New()
	}
	return ct
}

// Set writes ct back, or clears the cookie once the cart is empty. A cart
// too big for one cookie returns ErrTooLarge and leaves the cookie as it was.
func (c *Codec) Set(ctx *gin.Context, ct *cart.Cart) error {
	if ct == nil || ct.Len() == 0 {
		c.Clear(ctx)
		return nil
	}
	val, err := c.Encode(ct)
	if err != nil {
		return err
	}
	if len(c.CookieName)+1+len(val) > MaxCookieBytes {
		return ErrTooLarge
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, 0, "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

// SignSnapshot produces the value an "Add to cart" form posts back, so the
// add itself needs no call to the API.
func (c *Codec) SignSnapshot(p cart.ProductSnapshot) (string, error) {
	return signed.Encode(c.Secret, p)
}

func (c *Codec) VerifySnapshot(v string) (cart.ProductSnapshot, error) {
	var p cart.ProductSnapshot
	if err := signed.Decode(c.Secret, v, &p); err != nil || p.ID <= 0 {
		return cart.ProductSnapshot{}, ErrInvalidSnapshot
	}
	return p, nil
}
