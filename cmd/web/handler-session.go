package main

import (
	"fmt"
	"net/http"
)

type sessionRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// sessionPOST logs a user in, registering the account on first login.
func (app *application) sessionPOST(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	profile, err := app.profileService.LoginOrRegister(r.Context(), req.Email, req.Name)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	// Renew the session token on privilege change to prevent session fixation.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("renew session token: %w", err))
		return
	}
	app.sessionManager.Put(r.Context(), sessionUserIDKey, profile.ID)

	app.writeJSON(w, r, http.StatusOK, profile)
}

// sessionDELETE logs the user out by destroying the session.
func (app *application) sessionDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("destroy session: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
