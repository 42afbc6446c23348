package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/coursehub-api/internal/api/middleware"
)

// Handlers groups everything mounted under /api.
type Handlers struct {
	Auth    *AuthHandler
	Courses *CourseHandler
	Gate    *middleware.AuthMiddleware
}

// Mount registers the API routes on r. Admin routes pass the auth gate and
// the admin check before any handler runs.
func (h Handlers) Mount(r chi.Router) {
	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)

	r.Get("/courses", h.Courses.ListCourses)
	r.Get("/courses/{id}", h.Courses.GetCourse)

	r.Group(func(r chi.Router) {
		r.Use(h.Gate.Authenticate)

		r.Get("/users/me", h.Courses.Me)
		r.Post("/users/enroll/{courseId}", h.Courses.Enroll)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.Gate.RequireAdmin)

			r.Post("/courses", h.Courses.CreateCourse)
			r.Put("/courses/{id}", h.Courses.UpdateCourse)
			r.Delete("/courses/{id}", h.Courses.DeleteCourse)
		})
	})
}
