package main

import (
	"net/http"

	"github.com/mkallio/splitlog/internal/workout"
)

type upsertSetRequest struct {
	WorkoutExerciseID int     `json:"workoutExerciseId"`
	SetIndex          int     `json:"setIndex"`
	Weight            float64 `json:"weight"`
	Reps              int     `json:"reps"`
}

// setUpsertPOST logs a normal set, overwriting any earlier set at the same index.
func (app *application) setUpsertPOST(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	var req upsertSetRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	set, err := app.workoutService.UpsertNormalSet(
		r.Context(), workoutID, req.WorkoutExerciseID, req.SetIndex, req.Weight, req.Reps)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, set)
}

type updateSetRequest struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// setUpdatePATCH overwrites weight and reps of a single set.
func (app *application) setUpdatePATCH(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	setID, ok := app.parseIDParam(w, r, "setID")
	if !ok {
		return
	}
	var req updateSetRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	set, err := app.workoutService.UpdateSet(r.Context(), workoutID, setID, req.Weight, req.Reps)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, set)
}

// setDELETE removes a single set.
func (app *application) setDELETE(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	setID, ok := app.parseIDParam(w, r, "setID")
	if !ok {
		return
	}
	if err := app.workoutService.DeleteSet(r.Context(), workoutID, setID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dropSetGroupRequest struct {
	WorkoutExerciseID int               `json:"workoutExerciseId"`
	Main              workout.Measure   `json:"main"`
	Drops             []workout.Measure `json:"drops"`
}

// dropSetGroupPOST logs a drop set: a main set followed by its drops.
func (app *application) dropSetGroupPOST(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	var req dropSetGroupRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	groupID, err := app.workoutService.CreateDropSetGroup(
		r.Context(), workoutID, req.WorkoutExerciseID, req.Main, req.Drops)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, map[string]int{"groupId": groupID})
}

// dropSetGroupDELETE removes a drop-set group and all its sets.
func (app *application) dropSetGroupDELETE(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseIDParam(w, r, "workoutID")
	if !ok {
		return
	}
	groupID, ok := app.parseIDParam(w, r, "groupID")
	if !ok {
		return
	}
	if err := app.workoutService.DeleteDropSetGroup(r.Context(), workoutID, groupID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
