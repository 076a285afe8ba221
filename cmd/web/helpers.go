package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/mlahtinen/tutorloop/internal/tutor"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	app.writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri)
	app.writeError(w, status, http.StatusText(status))
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// tutorError maps orchestration failures to HTTP statuses: invalid input is
// the client's fault, an upstream model failure is a bad gateway.
func (app *application) tutorError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationError *tutor.ValidationError
		invocationError *tutor.InvocationError
	)

	switch {
	case errors.As(err, &validationError):
		app.logger.Debug("invalid tutoring request", errors.SlogError(err))
		app.writeError(w, http.StatusBadRequest, validationError.Error())
	case errors.As(err, &invocationError):
		app.logger.LogAttrs(r.Context(), slog.LevelError, "model invocation failed",
			slog.String("model", string(invocationError.Model)), errors.SlogError(err))
		app.writeError(w, http.StatusBadGateway, "upstream model call failed")
	default:
		app.serverError(w, r, err)
	}
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out, all we can do is log.
		app.logger.Error("encode response", errors.SlogError(err))
	}
}

func (app *application) writeError(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes the request body into v and rejects unknown fields so that
// client typos surface as errors instead of silently ignored input.
func readJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errors.Wrap(err, "decode request body")
	}

	return nil
}
