package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"github.com/CreativVentures-hub/focus-group-ai/app"
	"github.com/CreativVentures-hub/focus-group-ai/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/catalog", GetCatalog(app))
	api.Get("/catalog/{dimension}", SearchDimension(app))
	api.Get("/locales", ListLocales(app))
	api.Get("/locales/{locale}", GetLocale(app))

	api.Route("/drafts", func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		r.Post("/", CreateDraft(app))
		r.Get("/{id}", GetDraft(app))
		r.Put("/{id}", UpdateDraft(app))
		r.Delete("/{id}", DeleteDraft(app))

		r.Post("/{id}/selections/{dimension}", UpdateSelection(app))
		r.Post("/{id}/submit", SubmitDraft(app))
		r.Post("/{id}/cancel", CancelSubmission(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
