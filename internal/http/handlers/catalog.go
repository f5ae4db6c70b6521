package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shopfront.dev/app/internal/http/cartcookie"
	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/internal/http/render"
	"shopfront.dev/app/internal/modules/cart"
	"shopfront.dev/app/internal/modules/catalog"
	"shopfront.dev/app/internal/shared/apperr"
	"shopfront.dev/app/pkg/view"
)

// CatalogHandler serves the product grid and the cart panel next to it.
type CatalogHandler struct {
	Backend  catalog.Backend
	Cart     *cartcookie.Codec
	Log      *slog.Logger
	Currency string
}

func NewCatalogHandler(backend catalog.Backend, ck *cartcookie.Codec, l *slog.Logger) *CatalogHandler {
	return &CatalogHandler{Backend: backend, Cart: ck, Log: l, Currency: view.DefaultCurrency}
}

// Index handles GET /. A failed fetch still renders the page with an empty
// grid; the failure is only logged.
func (h *CatalogHandler) Index(c *gin.Context) {
	v := catalog.NewView(c.Request.Context(), h.Backend, h.Log)
	defer v.Close()
	v.Load()

	ct := h.Cart.Get(c)
	render.Page(c, http.StatusOK, "catalog.html", view.CatalogPage{
		Flash:     middleware.GetFlash(c),
		CartCount: ct.Count(),
		Loading:   v.Loading(),
		Products:  h.cards(c, v.Products()),
		Cart:      cartPanel(ct, h.Currency),
	})
}

// DeleteProduct handles POST /products/:id/delete. On success the matching
// cart line goes too; on failure the page is left as it was, without a
// message.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Invalid product id.", nil))
		return
	}

	v := catalog.NewView(c.Request.Context(), h.Backend, h.Log)
	defer v.Close()

	ct := h.Cart.Get(c)
	if err := v.DeleteProduct(id, ct); err == nil {
		if err := h.Cart.Set(c, ct); err != nil {
			h.Log.ErrorContext(c.Request.Context(), "cart cookie write failed", slog.Any("err", err))
		}
	}
	render.Redirect(c, "/")
}

func (h *CatalogHandler) cards(c *gin.Context, items []catalog.Product) []view.ProductCard {
	out := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		snap, err := h.Cart.SignSnapshot(p.Snapshot())
		if err != nil {
			h.Log.ErrorContext(c.Request.Context(), "snapshot sign failed",
				slog.Int64("product_id", p.ID), slog.Any("err", err))
		}
		img := p.ImageURL
		if img == "" {
			img = view.PlaceholderImage
		}
		out = append(out, view.ProductCard{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       view.Money(p.Price, h.Currency),
			Stock:       p.Stock,
			ImageURL:    img,
			Snapshot:    snap,
		})
	}
	return out
}

func cartPanel(ct *cart.Cart, currency string) view.CartPanel {
	if ct.Len() == 0 {
		return view.CartPanel{Total: view.Money(decimal.Zero, currency)}
	}
	lines := make([]view.CartLine, 0, ct.Len())
	for _, it := range ct.Items {
		lines = append(lines, view.CartLine{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: view.Money(it.Price, currency),
			Quantity:  it.Quantity,
		})
	}
	return view.CartPanel{
		Lines: lines,
		Count: ct.Count(),
		Total: view.MoneyFixed(ct.Total(), currency),
	}
}
