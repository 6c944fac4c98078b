package main

import (
	"net/http"
)

// statsOverviewGET returns lifetime totals, personal records and recent workouts.
func (app *application) statsOverviewGET(w http.ResponseWriter, r *http.Request) {
	overview, err := app.statsService.Overview(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, overview)
}
