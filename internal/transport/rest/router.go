package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/rbac-service/internal/auth"
	"github.com/frahmantamala/rbac-service/internal/permission"
	"github.com/frahmantamala/rbac-service/internal/role"
	"github.com/frahmantamala/rbac-service/internal/transport/middleware"
	"github.com/frahmantamala/rbac-service/internal/transport/swagger"
	"github.com/frahmantamala/rbac-service/internal/user"
)

const (
	PermManageUsers       = "manage_users"
	PermManageRoles       = "manage_roles"
	PermManagePermissions = "manage_permissions"
	PermReadUsers         = "read_users"
	PermReadRoles         = "read_roles"
	PermReadPermissions   = "read_permissions"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	rbac *auth.RBACAuthorization,
	userHandler *user.Handler,
	roleHandler *role.Handler,
	permissionHandler *permission.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Protected routes: authentication always runs before any
		// permission guard so 401 takes precedence over 403.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/admin", func(ar chi.Router) {
				ar.Group(func(ur chi.Router) {
					ur.Use(rbac.RequireAnyPermission(PermManageUsers, PermReadUsers))
					ur.Get("/users", userHandler.GetUsers)
					ur.Get("/users/{id}", userHandler.GetUser)
				})
				ar.Group(func(ur chi.Router) {
					ur.Use(rbac.RequirePermission(PermManageUsers))
					ur.Put("/users/{id}", userHandler.UpdateUser)
					ur.Post("/users/{id}/roles", userHandler.AssignRoles)
				})

				ar.Group(func(rr chi.Router) {
					rr.Use(rbac.RequireAnyPermission(PermManageRoles, PermReadRoles))
					rr.Get("/roles", roleHandler.GetRoles)
					rr.Get("/roles/{id}", roleHandler.GetRole)
				})
				ar.Group(func(rr chi.Router) {
					rr.Use(rbac.RequirePermission(PermManageRoles))
					rr.Post("/roles", roleHandler.CreateRole)
					rr.Put("/roles/{id}", roleHandler.UpdateRole)
					rr.Delete("/roles/{id}", roleHandler.DeleteRole)
					rr.Post("/roles/{id}/permissions", roleHandler.AssignPermissions)
				})

				ar.Group(func(pmr chi.Router) {
					pmr.Use(rbac.RequireAnyPermission(PermManagePermissions, PermReadPermissions))
					pmr.Get("/permissions", permissionHandler.GetPermissions)
					pmr.Get("/permissions/{id}", permissionHandler.GetPermission)
				})
				ar.Group(func(pmr chi.Router) {
					pmr.Use(rbac.RequirePermission(PermManagePermissions))
					pmr.Post("/permissions", permissionHandler.CreatePermission)
					pmr.Put("/permissions/{id}", permissionHandler.UpdatePermission)
					pmr.Delete("/permissions/{id}", permissionHandler.DeletePermission)
				})
			})
		})
	})
}
