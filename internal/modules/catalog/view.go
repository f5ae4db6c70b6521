package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"shopfront.dev/app/internal/modules/cart"
)

// ErrViewClosed is returned when a result arrives after the view was closed.
// Such results are dropped.
var ErrViewClosed = errors.New("catalog view closed")

// Backend is the part of the API the catalog view needs.
type Backend interface {
	List(ctx context.Context) ([]Product, error)
	Delete(ctx context.Context, id int64) error
}

// View holds the product list for one render. Remote calls run under the
// view's own context; Close cancels them and any late result is discarded.
type View struct {
	backend Backend
	log     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	loading  bool
	products []Product
}

func NewView(parent context.Context, backend Backend, l *slog.Logger) *View {
	ctx, cancel := context.WithCancel(parent)
	return &View{
		backend:  backend,
		log:      l,
		ctx:      ctx,
		cancel:   cancel,
		loading:  true,
		products: []Product{},
	}
}

// Load fetches the product list. A failure is logged and leaves the list
// empty; loading is cleared either way.
func (v *View) Load() {
	items, err := v.backend.List(v.ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if err != nil {
		v.log.ErrorContext(v.ctx, "catalog load failed", slog.Any("err", err))
	} else {
		v.products = items
	}
	v.loading = false
}

// DeleteProduct removes the product remotely, then from the local list and
// from c. When the remote call fails nothing local changes.
func (v *View) DeleteProduct(id int64, c *cart.Cart) error {
	err := v.backend.Delete(v.ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	if err != nil {
		v.log.ErrorContext(v.ctx, "catalog delete failed",
			slog.Int64("product_id", id),
			slog.Any("err", err),
		)
		return err
	}

	kept := v.products[:0]
	for _, p := range v.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	v.products = kept
	if c != nil {
		c.Remove(id)
	}
	return nil
}

func (v *View) Products() []Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Product, len(v.products))
	copy(out, v.products)
	return out
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Close ends the view's lifetime. Safe to call more than once.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.cancel()
}
