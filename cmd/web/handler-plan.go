package main

import (
	"net/http"

	"github.com/mkallio/splitlog/internal/plan"
)

// planGET returns the user's configured training days.
func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	current, err := app.planService.Get(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, current)
}

type savePlanRequest struct {
	Days []plan.DayInput `json:"days"`
}

// planPOST replaces the user's plan with custom training days.
func (app *application) planPOST(w http.ResponseWriter, r *http.Request) {
	var req savePlanRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	saved, err := app.planService.SaveCustom(r.Context(), req.Days)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, saved)
}

// planDefaultPOST generates the default plan for the user's split.
func (app *application) planDefaultPOST(w http.ResponseWriter, r *http.Request) {
	generated, err := app.planService.GenerateDefault(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, generated)
}
