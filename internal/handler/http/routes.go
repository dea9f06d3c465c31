package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
	})

	// routes behind the bearer-token gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/bucketlists", func(r chi.Router) {
			r.Post("/", h.createBucketlist)
			r.Get("/", h.listBucketlists)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getBucketlist)
				r.Put("/", h.renameBucketlist)
				r.Delete("/", h.deleteBucketlist)

				r.Route("/items", func(r chi.Router) {
					r.Post("/", h.createItem)
					r.Get("/", h.listItems)
					r.Get("/{itemID}", h.getItem)
					r.Put("/{itemID}", h.renameItem)
					r.Delete("/{itemID}", h.deleteItem)
				})
			})
		})
	})

	return router
}
