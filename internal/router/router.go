package router

import (
	"net/http"
	"time"

	"infinix-store/internal/handlers"
	"infinix-store/internal/kv"
	"infinix-store/internal/middleware"
	"infinix-store/internal/services"
	"infinix-store/internal/store"
	"infinix-store/internal/storefront"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type Options struct {
	DB         *store.DB
	KV         kv.Store
	JWTSecret  string
	BcryptCost int
	Checkout   services.CheckoutOptions
	RateLimit  rate.Limit
	RateBurst  int

	// SlowRequest is the latency above which requests are logged as slow.
	SlowRequest time.Duration
	Now         func() time.Time
}

// SetupRouter wires the storefront API. The registry is returned so callers can run eviction.
func SetupRouter(opts Options, logger zerolog.Logger) (*mux.Router, *storefront.Registry) {
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(10)
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 20
	}
	if opts.SlowRequest == 0 {
		opts.SlowRequest = time.Second
	}

	registry := storefront.NewRegistry(storefront.Deps{
		DB:         opts.DB,
		KV:         opts.KV,
		Logger:     logger,
		BcryptCost: opts.BcryptCost,
		Checkout:   opts.Checkout,
	})
	tokens := services.NewTokenService(opts.JWTSecret, logger)
	catalogService := services.NewCatalogService(opts.DB.Catalog, nil)
	adminService := services.NewAdminService(opts.DB, logger, opts.Now)

	authHandler := handlers.NewAuthHandler(logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	cartHandler := handlers.NewCartHandler(catalogService, logger)
	checkoutHandler := handlers.NewCheckoutHandler(logger)
	designerHandler := handlers.NewDesignerHandler(logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)

	rateLimiter := middleware.NewRateLimiter(opts.RateLimit, opts.RateBurst)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger, opts.SlowRequest))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestValidation())
	api.Use(middleware.ClientIdentity(tokens, registry, logger))

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	auth.HandleFunc("/session", authHandler.Session).Methods("GET")

	api.HandleFunc("/categories", catalogHandler.Categories).Methods("GET")
	api.HandleFunc("/products", catalogHandler.Products).Methods("GET")
	api.HandleFunc("/products/featured", catalogHandler.Featured).Methods("GET")
	api.HandleFunc("/products/{id}", catalogHandler.Product).Methods("GET")

	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.RequireSession())
	cart.HandleFunc("", cartHandler.GetCart).Methods("GET")
	cart.HandleFunc("", cartHandler.ClearCart).Methods("DELETE")
	cart.HandleFunc("/items", cartHandler.AddItem).Methods("POST")
	cart.HandleFunc("/items/{productId}", cartHandler.UpdateItem).Methods("PUT")
	cart.HandleFunc("/items/{productId}", cartHandler.RemoveItem).Methods("DELETE")

	checkout := api.PathPrefix("/checkout").Subrouter()
	checkout.Use(middleware.RequireSession())
	checkout.HandleFunc("", checkoutHandler.GetState).Methods("GET")
	checkout.HandleFunc("/begin", checkoutHandler.Begin).Methods("POST")
	checkout.HandleFunc("/shipping", checkoutHandler.Shipping).Methods("POST")
	checkout.HandleFunc("/payment", checkoutHandler.Payment).Methods("POST")
	checkout.HandleFunc("/back", checkoutHandler.Back).Methods("POST")
	checkout.HandleFunc("/reset", checkoutHandler.Reset).Methods("POST")

	designer := api.PathPrefix("/designer").Subrouter()
	designer.Use(middleware.RequireSession())
	designer.HandleFunc("", designerHandler.GetState).Methods("GET")
	designer.HandleFunc("/scene", designerHandler.Scene).Methods("GET")
	designer.HandleFunc("/reset", designerHandler.Reset).Methods("POST")
	designer.HandleFunc("/furniture", designerHandler.AddFurniture).Methods("POST")
	designer.HandleFunc("/selection", designerHandler.Select).Methods("PUT")
	designer.HandleFunc("/selection", designerHandler.RemoveSelected).Methods("DELETE")
	designer.HandleFunc("/selection/position", designerHandler.Position).Methods("PUT")
	designer.HandleFunc("/selection/rotation", designerHandler.Rotation).Methods("PUT")
	designer.HandleFunc("/selection/scale", designerHandler.Scale).Methods("PUT")
	designer.HandleFunc("/room", designerHandler.Room).Methods("PUT")
	designer.HandleFunc("/undo", designerHandler.Undo).Methods("POST")
	designer.HandleFunc("/redo", designerHandler.Redo).Methods("POST")
	designer.HandleFunc("/save", designerHandler.Save).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin())
	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	admin.HandleFunc("/orders", adminHandler.Orders).Methods("GET")
	admin.HandleFunc("/orders/stats", adminHandler.OrderStats).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", adminHandler.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/designs", adminHandler.Designs).Methods("GET")
	admin.HandleFunc("/designs/{id}", adminHandler.DeleteDesign).Methods("DELETE")

	r.HandleFunc("/health", handlers.Health).Methods("GET")

	return r, registry
}
