package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// requestLogger returns the logger attached by the request middleware, or the
// application logger when the request never went through it.
func (app *Application) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &app.logger
}

func (app *Application) logError(r *http.Request, err error) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	_, file1, line1, ok1 := runtime.Caller(3)
	if !ok1 {
		file1 = "unknown"
		line1 = 0
	}

	app.requestLogger(r).Error().
		Str("caller", fmt.Sprintf("%s:%d->%s:%d", filepath.Base(file), line, filepath.Base(file1), line1)).
		Str("method", r.Method).
		Str("uri", r.URL.RequestURI()).
		Err(err).
		Msg("request failed")
}

func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}
	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse reports a store failure. The store's message is part of
// the body so clients can tell connection problems from bad input.
func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "Error: " + err.Error()
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) recordNotFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.requestLogger(r).Info().Str("uri", r.URL.RequestURI()).Msg(message)
	app.errorResponse(w, r, http.StatusNotFound, message)
}

// requestCancelledResponse answers a request whose client left while it was
// waiting for a free slot.
func (app *Application) requestCancelledResponse(w http.ResponseWriter, r *http.Request) {
	app.requestLogger(r).Info().Str("uri", r.URL.RequestURI()).Err(r.Context().Err()).Msg("request cancelled while queued")
	app.errorResponse(w, r, http.StatusServiceUnavailable, "request cancelled before it could be served")
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}
