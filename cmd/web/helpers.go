package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mkallio/splitlog/internal/plan"
	"github.com/mkallio/splitlog/internal/workout"
)

const maxRequestBodySize = 1 << 20

// writeJSON marshals data and writes it with the given status code.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("marshal response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// readJSON decodes the request body into dst. Unknown fields and trailing data are rejected.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		app.errorResponse(w, r, http.StatusBadRequest, "invalid request body: unexpected trailing data")
		return false
	}
	return true
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, map[string]string{"error": message})
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", slog.Any("error", err))
	app.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

// handleServiceError maps domain errors to HTTP status codes. Unknown errors become a 500.
func (app *application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalidInput):
		app.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, workout.ErrInvalidState):
		app.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, workout.ErrNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, plan.ErrDuplicateName):
		app.errorResponse(w, r, http.StatusConflict, err.Error())
	default:
		app.serverError(w, r, err)
	}
}

// parseIDParam parses an integer path parameter. On failure it responds with HTTP 404.
func (app *application) parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 1 {
		app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}
