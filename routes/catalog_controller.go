package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/CreativVentures-hub/focus-group-ai/app"
	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/draft"
	"github.com/CreativVentures-hub/focus-group-ai/httpx"
	"github.com/CreativVentures-hub/focus-group-ai/model"
)

func GetCatalog(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, app.Catalog)
	}
}

// SearchDimension returns one option list, optionally filtered by ?q= over
// labels. The two category pickers are addressable like any other dimension.
func SearchDimension(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dimension := chi.URLParam(r, "dimension")
		query := r.URL.Query().Get("q")

		var options []model.Option
		switch dimension {
		case draft.DimensionBuyingBehaviors:
			options = app.Catalog.BuyingBehaviors
		case draft.DimensionProductCategories:
			options = app.Catalog.ProductCategories
		default:
			d, ok := app.Catalog.Dimension(dimension)
			if !ok {
				httpx.LogNotFound(w, "get_dimension", dimension)
				return
			}
			options = d.Options
		}

		render.JSON(w, r, map[string]any{
			"dimension": dimension,
			"options":   catalog.SearchOptions(options, query),
		})
	}
}

func ListLocales(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"locales": app.Locales.Locales(),
		})
	}
}

func GetLocale(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := chi.URLParam(r, "locale")
		if !app.Locales.Has(locale) {
			httpx.LogNotFound(w, "get_locale", locale)
			return
		}

		render.JSON(w, r, app.Locales.All(locale))
	}
}
