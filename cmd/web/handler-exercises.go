package main

import (
	"net/http"
)

// exercisesGET lists the exercise catalog: global entries plus the user's own.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.planService.ListExercises(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

type createExerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

// exercisesPOST creates a custom exercise owned by the user.
func (app *application) exercisesPOST(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	exercise, err := app.planService.CreateExercise(r.Context(), req.Name, req.MuscleGroup)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, exercise)
}
