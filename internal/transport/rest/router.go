package rest

import (
	"log/slog"

	"github.com/frahmantamala/finance-tracker/api"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/category"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	"github.com/frahmantamala/finance-tracker/internal/transaction"
	"github.com/frahmantamala/finance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/finance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/finance-tracker/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Health      *HealthHandler
	Auth        *auth.Handler
	User        *user.Handler
	Category    *category.Handler
	Transaction *transaction.Handler
	Dashboard   *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(nil))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get(swagger.DocumentPath, swagger.DocumentHandler(api.Document))
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Liveness)
			r.Get("/health/ready", h.Health.Readiness)
		}

		r.Post("/auth/login", h.Auth.Login)

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/auth/me", h.User.GetCurrentUser)
			}

			if h.Category != nil {
				pr.Route("/categories", func(cr chi.Router) {
					cr.Get("/", h.Category.ListCategories)
					cr.Post("/", h.Category.CreateCategory)
					cr.Get("/{id}", h.Category.GetCategory)
					cr.Put("/{id}", h.Category.UpdateCategory)
					cr.Delete("/{id}", h.Category.DeleteCategory)
				})
			}

			if h.Transaction != nil {
				pr.Route("/transactions", func(tr chi.Router) {
					tr.Get("/", h.Transaction.ListTransactions)
					tr.Post("/", h.Transaction.CreateTransaction)
					tr.Get("/export", h.Transaction.ExportTransactions)
					tr.Get("/{id}", h.Transaction.GetTransaction)
					tr.Put("/{id}", h.Transaction.UpdateTransaction)
					tr.Delete("/{id}", h.Transaction.DeleteTransaction)
				})
			}

			if h.Dashboard != nil {
				pr.Get("/dashboard/stats", h.Dashboard.GetStats)
			}
		})
	})
}
