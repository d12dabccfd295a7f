package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.RealIP, middleware.Recoverer, Logger(app.Log))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", app.GetState)
		r.Post("/collect", app.Collect)
		r.Post("/reset", app.Reset)

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", app.ListJobs)
			r.Post("/{id}/workers", app.HireWorker)
			r.Post("/{id}/upgrade", app.UpgradeJob)
		})
	})

	return r
}
