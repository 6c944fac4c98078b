package main

import (
	"errors"
	"net/http"

	"github.com/mkallio/splitlog/internal/workout"
)

// workoutTodayGET reports the rotation state and any workout in progress.
func (app *application) workoutTodayGET(w http.ResponseWriter, r *http.Request) {
	overview, err := app.workoutService.Today(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, overview)
}

type workoutStartRequest struct {
	DayKey string `json:"dayKey"`
}

// workoutStartPOST starts a workout session. An empty day key starts the
// recommended day. When a session is already in progress the response is a
// conflict carrying the existing workout.
func (app *application) workoutStartPOST(w http.ResponseWriter, r *http.Request) {
	var req workoutStartRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	started, err := app.workoutService.Start(r.Context(), req.DayKey)
	if err != nil {
		if errors.Is(err, workout.ErrWorkoutInProgress) {
			app.writeJSON(w, r, http.StatusConflict, map[string]any{
				"error":   "workout already in progress",
				"workout": started,
			})
			return
		}
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, started)
}

// workoutAbandonDELETE discards the workout in progress and everything logged in it.
func (app *application) workoutAbandonDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.workoutService.Abandon(r.Context()); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// workoutGET returns a workout with its exercise slots, sets and per-exercise stats.
func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	detail, err := app.workoutService.Get(r.Context(), workoutID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, detail)
}

// workoutCompletePOST marks a workout completed. Completing twice is a no-op.
func (app *application) workoutCompletePOST(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	completed, err := app.workoutService.Complete(r.Context(), workoutID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, completed)
}
