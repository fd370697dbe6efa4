package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the full API route tree.
func NewRouter(h *Handler, auth *AuthMiddleware, corsOrigins string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(corsOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/refresh", h.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Post("/logout", h.Logout)
				r.Get("/profile", h.Profile)
				r.With(auth.AdminOnly).Get("/users", h.ListUsers)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Get("/expiring", h.ExpiringProducts)
				r.Get("/expired", h.ExpiredProducts)
				r.Get("/low-stock", h.LowStockProducts)
				r.Get("/{id}", h.GetProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.With(auth.AdminOnly).Delete("/{id}", h.DeleteProduct)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
				r.Put("/{id}", h.UpdateCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", h.ListSuppliers)
				r.Post("/", h.CreateSupplier)
				r.Get("/{id}", h.GetSupplier)
				r.Put("/{id}", h.UpdateSupplier)
				r.Delete("/{id}", h.DeleteSupplier)
				r.Get("/{id}/products", h.SupplierProducts)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.ListTransactions)
				r.Post("/stock-in", h.StockIn)
				r.Post("/stock-out", h.StockOut)
				r.Get("/stats", h.TransactionStats)
			})

			r.Route("/barcode", func(r chi.Router) {
				r.Get("/search/{code}", h.BarcodeSearch)
				r.Get("/image/{id}", h.BarcodeImage)
			})
		})
	})

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
