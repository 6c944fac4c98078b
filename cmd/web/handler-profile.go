package main

import (
	"net/http"

	"github.com/mkallio/splitlog/internal/profile"
)

// profileGET returns the authenticated user's profile.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	current, err := app.profileService.Get(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, current)
}

// onboardingPOST stores the onboarding answers and marks onboarding done.
func (app *application) onboardingPOST(w http.ResponseWriter, r *http.Request) {
	var input profile.OnboardingInput
	if !app.readJSON(w, r, &input) {
		return
	}

	updated, err := app.profileService.CompleteOnboarding(r.Context(), input)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, updated)
}
