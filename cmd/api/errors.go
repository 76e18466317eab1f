package main

import (
	"errors"
	"net/http"

	"github.com/Beka01247/restaurant-api/internal/service"
)

var (
	errInvalidID    = errors.New("invalid ID format")
	errInvalidLimit = errors.New("limit must be a positive integer")
)

const (
	msgServerError = "Server error"
	msgNotFound    = "Cannot find restaurant"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonMessage(w, http.StatusInternalServerError, msgServerError)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonMessage(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonMessage(w, http.StatusNotFound, msgNotFound)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJsonMessage(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// serviceError answers with the status matching err: validation failures are
// 400, missing restaurants 404, anything else 500.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		app.badRequestResponse(w, r, validationErr)
	case errors.Is(err, service.ErrNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
