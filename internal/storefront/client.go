// Package storefront binds the per-browser services together. A Client is
// the server-side stand-in for one browser tab: its own session record,
// cart view, checkout wizard and designer session, all backed by a
// key-value namespace of its own.
package storefront

import (
	"context"
	"sync"
	"time"

	"infinix-store/internal/designer"
	"infinix-store/internal/kv"
	"infinix-store/internal/services"
	"infinix-store/internal/store"

	"github.com/rs/zerolog"
)

type Deps struct {
	DB           *store.DB
	KV           kv.Store
	Logger       zerolog.Logger
	BcryptCost   int
	Checkout     services.CheckoutOptions
	HistoryLimit int
}

type Client struct {
	ID string

	mu       sync.Mutex
	Identity *services.IdentityService
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Designer *services.DesignerService
}

func NewClient(ctx context.Context, id string, deps Deps) *Client {
	logger := deps.Logger.With().Str("client_id", id).Logger()
	ns := kv.Namespace(deps.KV, id)

	c := &Client{ID: id}
	c.Identity = services.NewIdentityService(deps.DB.Users, ns, logger, deps.BcryptCost)
	c.Cart = services.NewCartService(ns, logger)
	c.Identity.OnSessionChange(c.Cart.SetUser)

	opts := deps.Checkout
	after := opts.After
	if after == nil {
		after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	opts.After = func(d time.Duration, f func()) {
		after(d, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			f()
		})
	}
	c.Checkout = services.NewCheckoutService(c.Cart, c.Identity, logger, opts)

	limit := deps.HistoryLimit
	if limit <= 0 {
		limit = designer.DefaultHistoryLimit
	}
	session := designer.NewSession(designer.WithHistoryLimit(limit), designer.WithLogger(logger))
	c.Designer = services.NewDesignerService(session, deps.DB.Catalog, deps.DB.Designs, c.Identity, logger)

	// Per-user views are rebuilt whenever the signed-in user changes.
	c.Identity.OnSessionChange(c.Checkout.SetUser)
	c.Identity.OnSessionChange(c.Designer.SetUser)

	c.Identity.CheckAuth(ctx)
	return c
}

// Do runs fn with exclusive access to the client's services.
func (c *Client) Do(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}
