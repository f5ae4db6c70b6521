package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"shopfront.dev/app/internal/http/cartcookie"
	"shopfront.dev/app/internal/http/flash"
	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/internal/http/render"
	"shopfront.dev/app/internal/modules/cart"
	"shopfront.dev/app/internal/shared/apperr"
	"shopfront.dev/app/pkg/view"
)

// MsgCartFull is flashed when one more line would not fit in the cart cookie.
const MsgCartFull = "Your cart is full. Remove an item before adding another."

// CartHandler mutates the cookie cart. None of its routes call the API.
type CartHandler struct {
	Cart  *cartcookie.Codec
	Flash *flash.Codec
	Log   *slog.Logger
}

func NewCartHandler(ck *cartcookie.Codec, flashCodec *flash.Codec, l *slog.Logger) *CartHandler {
	return &CartHandler{Cart: ck, Flash: flashCodec, Log: l}
}

// Add handles POST /cart/add with the signed snapshot rendered into the card.
func (h *CartHandler) Add(c *gin.Context) {
	p, err := h.Cart.VerifySnapshot(c.PostForm("snapshot"))
	if err != nil {
		h.Log.WarnContext(c.Request.Context(), "cart add rejected", slog.Any("err", err))
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashError, "That product could not be added. Reload the page and try again.")
		return
	}

	ct := h.Cart.Get(c)
	ct.Add(p)
	h.save(c, ct)
}

func (h *CartHandler) Increase(c *gin.Context) { h.mutate(c, (*cart.Cart).Increase) }
func (h *CartHandler) Decrease(c *gin.Context) { h.mutate(c, (*cart.Cart).Decrease) }
func (h *CartHandler) Remove(c *gin.Context)   { h.mutate(c, (*cart.Cart).Remove) }

func (h *CartHandler) mutate(c *gin.Context, op func(*cart.Cart, int64)) {
	id, ok := parseID(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Invalid cart item.", nil))
		return
	}
	ct := h.Cart.Get(c)
	if !ct.Has(id) {
		// stale button from another tab; nothing to write
		render.Redirect(c, "/#cart")
		return
	}
	op(ct, id)
	h.save(c, ct)
}

func (h *CartHandler) save(c *gin.Context, ct *cart.Cart) {
	err := h.Cart.Set(c, ct)
	switch {
	case errors.Is(err, cartcookie.ErrTooLarge):
		h.Log.WarnContext(c.Request.Context(), "cart cookie full", slog.Int("lines", ct.Len()))
		render.RedirectWithFlash(c, h.Flash, "/#cart", view.FlashWarning, MsgCartFull)
	case err != nil:
		middleware.Fail(c, apperr.Wrap(err))
	default:
		render.Redirect(c, "/#cart")
	}
}
