package router

import (
	"github.com/go-chi/chi/v5"

	authapi "github.com/clockit/clockit-idm/pkg/auth/api"
	"github.com/clockit/clockit-idm/pkg/client"
	notificationapi "github.com/clockit/clockit-idm/pkg/notification/api"
)

// Prefixes holds the mount points of each route group.
type Prefixes struct {
	Auth          string
	Users         string
	Notifications string
	Admin         string
}

// DefaultPrefixes returns the paths the web frontend calls.
func DefaultPrefixes() Prefixes {
	return Prefixes{
		Auth:          "/api/auth",
		Users:         "/api/users",
		Notifications: "/api/notifications",
		Admin:         "/api/admin",
	}
}

// Config holds all the dependencies and handlers needed to setup routes
type Config struct {
	Prefixes Prefixes

	AuthHandle         authapi.Handle
	NotificationHandle notificationapi.Handle

	// Verifier checks bearer tokens on protected routes.
	Verifier client.TokenVerifier
	// AdminLookup confirms the admin flag against the employee record.
	AdminLookup client.AdminLookup
}

// SetupRoutes mounts all ClockIt routes on the provided router
func SetupRoutes(router chi.Router, cfg Config) {
	authenticate := client.AuthUserMiddleware(cfg.Verifier)
	requireAdmin := client.RequireAdmin(cfg.AdminLookup)

	router.Mount(cfg.Prefixes.Auth, authapi.Handler(cfg.AuthHandle, authenticate, requireAdmin))

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route(cfg.Prefixes.Users, func(r chi.Router) {
			r.Get("/profile", cfg.AuthHandle.GetProfile)
		})
		r.Mount(cfg.Prefixes.Notifications, notificationapi.Handler(cfg.NotificationHandle))

		adminRouter := chi.NewRouter()
		adminRouter.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Mount("/", notificationapi.AdminHandler(cfg.NotificationHandle))
		})
		r.Mount(cfg.Prefixes.Admin, adminRouter)
	})
}
