package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/issue"
	"github.com/frahmantamala/asset-management/internal/transport/middleware"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/frahmantamala/asset-management/internal/user"
)

// RegisterAllRoutes wires every endpoint onto the router. Routes live at the
// root path; admin-only groups sit behind the role gate. The static
// /assigned-assets/all route takes precedence over the {uid} wildcard.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, assetHandler *asset.Handler, issueHandler *issue.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	gate := auth.NewRoleGate(logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Public identity routes
	router.Post("/signup", authHandler.Signup)
	router.Post("/login", authHandler.Login)

	// Authenticated routes
	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.AuthMiddleware)

		pr.Get("/user/{id}", userHandler.GetUser)
		pr.Post("/unassign-asset", assetHandler.UnassignAsset)
		pr.Get("/assigned-assets/{uid}", assetHandler.AssignedAssets)
		pr.Post("/report-issue", issueHandler.ReportIssue)
		pr.Get("/issues/{uid}", issueHandler.UserIssues)

		// Admin-only routes
		pr.Group(func(ar chi.Router) {
			ar.Use(gate.RequireAdmin())

			ar.Get("/users", userHandler.ListUsers)
			ar.Delete("/user/{id}", userHandler.DeleteUser)

			ar.Get("/assets", assetHandler.ListAssets)
			ar.Post("/add-asset", assetHandler.AddAsset)
			ar.Delete("/asset/{id}", assetHandler.DeleteAsset)
			ar.Post("/assign-asset", assetHandler.AssignAsset)
			ar.Get("/assigned-assets/all", assetHandler.AllAssignments)

			ar.Get("/issues", issueHandler.Issues)
		})
	})
}
