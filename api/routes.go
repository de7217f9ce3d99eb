package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes mounts the read-only site API, the contact form and login.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, contactLimiter *rateLimiter) {
	r.Get("/home", handlers.publicHandler.home())
	r.Get("/projects", handlers.publicHandler.projects())
	r.Get("/projects/{slug}", handlers.publicHandler.project())
	r.Get("/services", handlers.publicHandler.services())
	r.Get("/services/{slug}", handlers.publicHandler.service())
	r.Get("/translations", handlers.publicHandler.translations())

	r.With(contactLimiter.middleware).Post("/contact", handlers.publicHandler.submitContact())

	r.Post("/auth/login", handlers.authHandler.login())
	r.With(auth.authenticate).Get("/auth/me", handlers.authHandler.me())
}

// setupAdminRoutes mounts the dashboard resources. Updates accept PUT, PATCH and POST so
// HTML forms with file inputs can be submitted directly.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Use(auth.authenticate)

	r.Route("/categories", func(r chi.Router) {
		h := handlers.categoryHandler
		r.Get("/", h.index())
		r.Get("/create", h.create())
		r.Post("/", h.store())
		r.Get("/{categoryID}", h.show())
		r.Get("/{categoryID}/edit", h.edit())
		r.Put("/{categoryID}", h.update())
		r.Patch("/{categoryID}", h.update())
		r.Post("/{categoryID}", h.update())
		r.Delete("/{categoryID}", h.destroy())
	})

	r.Route("/projects", func(r chi.Router) {
		h := handlers.projectHandler
		r.Get("/", h.index())
		r.Get("/create", h.create())
		r.Post("/", h.store())
		r.Get("/{projectID}", h.show())
		r.Get("/{projectID}/edit", h.edit())
		r.Put("/{projectID}", h.update())
		r.Patch("/{projectID}", h.update())
		r.Post("/{projectID}", h.update())
		r.Delete("/{projectID}", h.destroy())
		r.Delete("/{projectID}/files/{fileID}", h.removeFile())
	})

	r.Route("/services", func(r chi.Router) {
		h := handlers.serviceHandler
		r.Get("/", h.index())
		r.Get("/create", h.create())
		r.Post("/", h.store())
		r.Get("/{serviceID}", h.show())
		r.Get("/{serviceID}/edit", h.edit())
		r.Put("/{serviceID}", h.update())
		r.Patch("/{serviceID}", h.update())
		r.Post("/{serviceID}", h.update())
		r.Delete("/{serviceID}", h.destroy())
	})

	r.Route("/hero-sliders", func(r chi.Router) {
		h := handlers.heroSlideHandler
		r.Get("/", h.index())
		r.Get("/create", h.create())
		r.Post("/", h.store())
		r.Get("/{slideID}", h.show())
		r.Get("/{slideID}/edit", h.edit())
		r.Put("/{slideID}", h.update())
		r.Patch("/{slideID}", h.update())
		r.Post("/{slideID}", h.update())
		r.Delete("/{slideID}", h.destroy())
	})

	r.Route("/contacts", func(r chi.Router) {
		h := handlers.contactHandler
		r.Get("/", h.index())
		r.Get("/{contactID}", h.show())
	})
}
