package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"userstore/application/ports"
	"userstore/infrastructure/config"
	"userstore/interfaces/http/rest/handlers"
	"userstore/interfaces/http/rest/middleware"
	"userstore/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	repo   ports.UserRepository
	cfg    *config.Config
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(repo ports.UserRepository, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Requests that miss the route table get the standard error envelope
	// instead of chi's plain-text defaults.
	router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		common.RespondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// User endpoints
	userHandler := handlers.NewUserHandler(rt.repo, rt.logger)
	router.Get("/users", userHandler.ListUsers)
	router.Post("/register", userHandler.RegisterUser)
	router.Get("/users/{userID}", userHandler.GetUser)
	router.Patch("/update/{userID}", userHandler.UpdateUser)
	router.Delete("/delete/{userID}", userHandler.DeleteUser)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
