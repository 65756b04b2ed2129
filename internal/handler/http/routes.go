package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-onboard/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.welcome)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.getAppInfo)

		// routes without authorization
		r.Route("/auth", func(r chi.Router) {
			r.Get("/test", h.authTest)
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh-token", h.refreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Use(h.requireRole(models.RoleAdmin))

			r.Get("/users", h.listUsers)
		})
	})

	router.NotFound(apiNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
