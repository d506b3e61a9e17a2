package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/CreativVentures-hub/focus-group-ai/app"
	"github.com/CreativVentures-hub/focus-group-ai/draft"
	"github.com/CreativVentures-hub/focus-group-ai/httpx"
	"github.com/CreativVentures-hub/focus-group-ai/log"
	"github.com/CreativVentures-hub/focus-group-ai/payload"
	"github.com/CreativVentures-hub/focus-group-ai/webhook"
)

// SubmitDraft runs the submission lifecycle for one draft: validate, claim
// the single in-flight slot, perform the one webhook request, map the
// outcome. The draft state survives every failure so the user can retry.
func SubmitDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(app, w, r)
		if !ok {
			return
		}

		form := d.Snapshot()
		err := form.Validate(app.Catalog)
		if err != nil {
			log.Debugf("draft.submit.validate: %s", d.ID)
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{
				"error":      "validation_failed",
				"violations": payload.Violations(err),
			})
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		err = d.BeginSubmit(cancel)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "draft.submit.in_flight", "%s", err)
			return
		}
		defer d.EndSubmit()

		result, err := app.Webhook.Submit(ctx, form.Assemble(time.Now()))
		if err != nil {
			respondSubmitError(w, r, d, err)
			return
		}

		log.Infof("draft.submit: %s delivered (%s)", d.ID, result.Kind)
		render.JSON(w, r, result)
	}
}

func respondSubmitError(w http.ResponseWriter, r *http.Request, d *draft.Draft, err error) {
	if errors.Is(err, context.Canceled) {
		log.Debugf("draft.submit.cancelled: %s", d.ID)
		render.JSON(w, r, map[string]any{
			"status": "cancelled",
		})
		return
	}

	var serverErr *webhook.ServerError
	if errors.As(err, &serverErr) {
		log.Warnf("draft.submit.server_error: %s: %d %s", d.ID, serverErr.Status, serverErr)
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, map[string]any{
			"error":   "server_error",
			"message": serverErr.Error(),
		})
		return
	}

	// transport-level failure: leave retrying to the user
	log.Errorf("draft.submit.network: %s: %s", d.ID, err)
	w.WriteHeader(http.StatusBadGateway)
	render.JSON(w, r, map[string]any{
		"error":   "network_error",
		"message": "Unable to reach the processing service. Please check your connection and try again.",
	})
}

// CancelSubmission aborts the draft's in-flight request, if any.
func CancelSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := lookupDraft(app, w, r)
		if !ok {
			return
		}

		if !d.CancelSubmit() {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "draft.cancel.not_submitting")
			return
		}

		w.WriteHeader(http.StatusAccepted)
		render.JSON(w, r, map[string]any{
			"status": "cancelling",
		})
	}
}
