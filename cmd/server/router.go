package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/coursehub-api/internal/api"
	apiMiddleware "github.com/phrazzld/coursehub-api/internal/api/middleware"
)

// setupRouter creates the router with global middleware, the API routes and
// the health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(apiMiddleware.TraceMiddleware)

	handlers := api.Handlers{
		Auth:    api.NewAuthHandler(app.userStore, app.jwtService, app.hasher, app.config.Auth),
		Courses: api.NewCourseHandler(app.courseStore, app.userStore, app.enrollment),
		Gate:    apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore),
	}
	r.Route("/api", handlers.Mount)

	r.Get("/health", app.handleHealth)

	return r
}

func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, "OK"
	if app.ping != nil {
		if err := app.ping(r.Context()); err != nil {
			app.logger.Warn("health check failed", "error", err)
			status, body = http.StatusServiceUnavailable, "UNAVAILABLE"
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
