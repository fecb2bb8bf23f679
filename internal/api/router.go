package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/splice-sistemas/splice-be/internal/alerts"
	"github.com/splice-sistemas/splice-be/internal/api/handlers"
	"github.com/splice-sistemas/splice-be/internal/auth"
	"github.com/splice-sistemas/splice-be/internal/config"
	"github.com/splice-sistemas/splice-be/internal/entity"
	"github.com/splice-sistemas/splice-be/internal/models"
	"github.com/splice-sistemas/splice-be/internal/services"
	"github.com/splice-sistemas/splice-be/internal/websocket"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Auth         *auth.Auth
	Hub          *websocket.Hub
	UserService  services.UserServiceProvider
	AuditService services.AuditServiceProvider
	Store        *entity.Store
	AlertEngine  *alerts.Engine
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.UserService, deps.Auth)
	entityHandler := handlers.NewEntityHandler(deps.Store, deps.AuditService)
	importHandler := handlers.NewImportHandler(deps.Store, deps.AuditService)
	alertHandler := handlers.NewAlertHandler(deps.AlertEngine)
	activityHandler := handlers.NewActivityHandler(deps.AuditService)
	statusHandler := handlers.NewStatusHandler()
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Middleware())

			r.Get("/auth/me", authHandler.Me)

			// WebSocket connection endpoint for live dashboard updates
			r.Get("/ws", wsHandler.Serve)

			r.Get("/alerts", alertHandler.List)
			r.Get("/alerts/summary", alertHandler.Summary)
			r.Get("/activity", activityHandler.Recent)

			r.With(auth.RequireRole(models.RoleAdmin)).Get("/status", statusHandler.Host)

			// Uniform CRUD, export and import surface for every module
			r.Route("/modules/{module}", func(r chi.Router) {
				r.Get("/", entityHandler.List)
				r.Post("/", entityHandler.Create)
				r.Get("/export", entityHandler.Export)
				r.Post("/bulk-delete", entityHandler.BulkDelete)

				r.Get("/import/template", importHandler.Template)
				r.Post("/import/preview", importHandler.Preview)
				r.Post("/import", importHandler.Import)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", entityHandler.Get)
					r.Put("/", entityHandler.Update)
					r.Delete("/", entityHandler.Delete)
				})
			})
		})
	})

	return r
}
