package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	mux.Handle("POST /api/session", session(http.HandlerFunc(app.sessionPOST)))
	mux.Handle("DELETE /api/session", mustSession(http.HandlerFunc(app.sessionDELETE)))

	mux.Handle("GET /api/workouts/today", mustSession(http.HandlerFunc(app.workoutTodayGET)))
	mux.Handle("POST /api/workouts", mustSession(http.HandlerFunc(app.workoutStartPOST)))
	mux.Handle("DELETE /api/workouts/active", mustSession(http.HandlerFunc(app.workoutAbandonDELETE)))
	mux.Handle("GET /api/workouts/{workoutID}", mustSession(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /api/workouts/{workoutID}/complete", mustSession(http.HandlerFunc(app.workoutCompletePOST)))

	mux.Handle("POST /api/workouts/{workoutID}/sets", mustSession(http.HandlerFunc(app.setUpsertPOST)))
	mux.Handle("PATCH /api/workouts/{workoutID}/sets/{setID}", mustSession(http.HandlerFunc(app.setUpdatePATCH)))
	mux.Handle("DELETE /api/workouts/{workoutID}/sets/{setID}", mustSession(http.HandlerFunc(app.setDELETE)))
	mux.Handle("POST /api/workouts/{workoutID}/dropsets", mustSession(http.HandlerFunc(app.dropSetGroupPOST)))
	mux.Handle("DELETE /api/workouts/{workoutID}/dropsets/{groupID}",
		mustSession(http.HandlerFunc(app.dropSetGroupDELETE)))

	mux.Handle("GET /api/plan", mustSession(http.HandlerFunc(app.planGET)))
	mux.Handle("POST /api/plan", mustSession(http.HandlerFunc(app.planPOST)))
	mux.Handle("POST /api/plan/default", mustSession(http.HandlerFunc(app.planDefaultPOST)))

	mux.Handle("GET /api/exercises", mustSession(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("POST /api/exercises", mustSession(http.HandlerFunc(app.exercisesPOST)))

	mux.Handle("GET /api/stats/overview", mustSession(http.HandlerFunc(app.statsOverviewGET)))

	mux.Handle("GET /api/profile", mustSession(http.HandlerFunc(app.profileGET)))
	mux.Handle("POST /api/profile/onboarding", mustSession(http.HandlerFunc(app.onboardingPOST)))

	return mux
}
