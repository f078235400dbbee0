// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Every failure is sent as {"status": "fail", "message": ...}.
package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aoideee/bookshelf-api/internal/data"
)

// bookMessages holds the client-facing text for one write operation.
type bookMessages struct {
	missingName     string
	readPageExceeds string
	invalidFields   string
	badBody         string
	notFound        string
}

var (
	insertMessages = bookMessages{
		missingName:     "Gagal menambahkan buku. Mohon isi nama buku",
		readPageExceeds: "Gagal menambahkan buku. readPage tidak boleh lebih besar dari pageCount",
		invalidFields:   "Gagal menambahkan buku. Data buku tidak valid",
		badBody:         "Gagal menambahkan buku. Body request tidak valid",
	}
	updateMessages = bookMessages{
		missingName:     "Gagal memperbarui buku. Mohon isi nama buku",
		readPageExceeds: "Gagal memperbarui buku. readPage tidak boleh lebih besar dari pageCount",
		invalidFields:   "Gagal memperbarui buku. Data buku tidak valid",
		badBody:         "Gagal memperbarui buku. Body request tidak valid",
		notFound:        "Gagal memperbarui buku. Id tidak ditemukan",
	}
)

const (
	msgInsertFailed    = "Buku gagal ditambahkan"
	msgBookNotFound    = "Buku tidak ditemukan"
	msgDeleteNotFound  = "Buku gagal dihapus. Id tidak ditemukan"
	msgServerError     = "the server encountered a problem and could not process your request"
	msgRouteNotFound   = "the requested resource could not be found"
	msgRateLimitExceed = "rate limit exceeded"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFrom(r)),
	)
}

// errorResponse sends a fail envelope with the given status code and message.
// extra keys, if any, are merged into the envelope.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, extra envelope) {
	env := envelope{"status": "fail", "message": message}
	for k, v := range extra {
		env[k] = v
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, msgServerError, nil)
}

// insertFailedResponse reports a book that could not be stored.
func (app *applicationDependencies) insertFailedResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, msgInsertFailed, nil)
}

// notFoundResponse sends a 404 for routes that do not exist.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, msgRouteNotFound, nil)
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message, nil)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, msgRateLimitExceed, nil)
}

// badBodyResponse sends a 400 for a request body that could not be decoded.
// Decoder errors name internal types, so they are logged rather than returned.
func (app *applicationDependencies) badBodyResponse(w http.ResponseWriter, r *http.Request, msgs bookMessages, err error) {
	app.logger.Warn("bad request body",
		slog.String("error", err.Error()),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFrom(r)),
	)
	app.errorResponse(w, r, http.StatusBadRequest, msgs.badBody, nil)
}

// bookWriteErrorResponse maps an error from Insert or Update to a response.
func (app *applicationDependencies) bookWriteErrorResponse(w http.ResponseWriter, r *http.Request, msgs bookMessages, err error) {
	var fieldsErr *data.InvalidFieldsError

	switch {
	case errors.Is(err, data.ErrMissingName):
		app.errorResponse(w, r, http.StatusBadRequest, msgs.missingName, nil)
	case errors.Is(err, data.ErrReadPageExceedsPageCount):
		app.errorResponse(w, r, http.StatusBadRequest, msgs.readPageExceeds, nil)
	case errors.As(err, &fieldsErr):
		app.errorResponse(w, r, http.StatusBadRequest, msgs.invalidFields, envelope{"errors": fieldsErr.Fields})
	case errors.Is(err, data.ErrRecordNotFound) && msgs.notFound != "":
		app.errorResponse(w, r, http.StatusNotFound, msgs.notFound, nil)
	case errors.Is(err, data.ErrInsertFailed):
		app.insertFailedResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
