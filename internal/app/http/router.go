package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"autocotizar/go_backend/internal/app/batch"
	"autocotizar/go_backend/internal/app/config"
	"autocotizar/go_backend/internal/app/http/handlers"
	"autocotizar/go_backend/internal/app/http/middleware"
	"autocotizar/go_backend/internal/observability"
)

func NewRouter(cfg config.Config, issuer *batch.Issuer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	h := handlers.New(cfg, issuer)

	r.Get("/health", h.Health)
	r.Handle("/metrics", observability.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxUploadBytes))

		r.Get("/", h.QuoteForm)
		r.Post("/", h.QuoteUpload)

		r.Route("/v1", func(r chi.Router) {
			r.Post("/quotes", h.CreateQuote)
		})
	})

	return r
}
