package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/CreativVentures-hub/focus-group-ai/app"
	"github.com/CreativVentures-hub/focus-group-ai/criteria"
	"github.com/CreativVentures-hub/focus-group-ai/draft"
	"github.com/CreativVentures-hub/focus-group-ai/httpx"
	"github.com/CreativVentures-hub/focus-group-ai/log"
	"github.com/CreativVentures-hub/focus-group-ai/model"
)

func CreateDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := app.Drafts.Create()
		if err != nil {
			httpx.LogInternalError(w, "draft.create", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, d.View())
	}
}

func GetDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(app, w, r)
		if !ok {
			return
		}
		render.JSON(w, r, d.View())
	}
}

func UpdateDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(app, w, r)
		if !ok {
			return
		}

		fields := model.SessionFields{}
		err := render.DecodeJSON(r.Body, &fields)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		// disabled session types are rejected at the input level
		err = d.SetFields(fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "draft.set_fields", "%s", err)
			return
		}

		render.JSON(w, r, d.View())
	}
}

func DeleteDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := app.Drafts.Delete(id)
		if err != nil {
			httpx.LogNotFound(w, "draft.delete", id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type selectionRequest struct {
	Op    string `json:"op"`
	Label string `json:"label,omitempty"`
	Query string `json:"query,omitempty"`
}

// UpdateSelection drives one dimension's picker through its operations:
// open, toggle, confirm, clear, close, remove. Open answers with the
// candidate list, everything else with the updated draft view. Open on an
// already-open picker is the live search; it keeps the round's toggles.
func UpdateSelection(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(app, w, r)
		if !ok {
			return
		}

		req := selectionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		dimension := chi.URLParam(r, "dimension")
		var options []model.Option
		var pending []string
		err = d.Selector(dimension, func(s *criteria.Selector) error {
			switch req.Op {
			case "open":
				options = s.Open(req.Query)
			case "toggle":
				if err := s.Toggle(req.Label); err != nil {
					return err
				}
			case "confirm":
				s.Confirm()
			case "clear":
				s.Clear()
			case "close":
				s.Close()
			case "remove":
				s.Remove(req.Label)
			default:
				return errors.New("unknown selection op " + req.Op)
			}
			pending = s.Pending()
			return nil
		})
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "draft.selection", "%s", err)
			return
		}

		if req.Op == "open" {
			render.JSON(w, r, map[string]any{
				"dimension": dimension,
				"options":   options,
				"pending":   pending,
			})
			return
		}
		render.JSON(w, r, map[string]any{
			"draft":   d.View(),
			"pending": pending,
		})
	}
}

func lookupDraft(app app.App, w http.ResponseWriter, r *http.Request) (*draft.Draft, bool) {
	id := chi.URLParam(r, "id")
	d, err := app.Drafts.Get(id)
	if err != nil {
		httpx.LogNotFound(w, "draft.get", id)
		return nil, false
	}
	return d, true
}
