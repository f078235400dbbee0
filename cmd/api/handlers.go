// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the book store.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aoideee/bookshelf-api/internal/data"
)

// createBookHandler handles POST /books.
// It validates and stores the book, then responds 201 with the new id.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	// Decode the body with readJSON, which caps its size and rejects trailing data.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badBodyResponse(w, r, insertMessages, err)
		return
	}

	// Insert validates the input, generates the id and sets both timestamps.
	id, err := app.models.Books.Insert(input)
	if err != nil {
		app.bookWriteErrorResponse(w, r, insertMessages, err)
		return
	}

	// Confirm the book is readable before reporting success.
	_, err = app.models.Books.Get(id)
	if err != nil {
		app.insertFailedResponse(w, r, fmt.Errorf("book %s missing after insert: %w", id, err))
		return
	}

	// Respond with the new id and a 201 Created status.
	err = app.writeJSON(w, http.StatusCreated, success("Buku berhasil ditambahkan", envelope{"bookId": id}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /books?name=&reading=&finished=.
// It responds with the matching books projected to id, name and publisher.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	// reading and finished only count when they are "0" or "1".
	qs := r.URL.Query()
	filters := data.NewFilters(qs.Get("name"), qs.Get("reading"), qs.Get("finished"))

	books := app.models.Books.List(filters)

	err := app.writeJSON(w, http.StatusOK, success("", envelope{"books": books}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /books/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	// Get returns a copy, so the response cannot alias the stored record.
	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, msgBookNotFound, nil)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, success("", envelope{"book": book}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /books/:id.
// The body replaces every mutable field. Validation failures are reported
// before the id is looked up.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	// Decode the replacement fields from the request body.
	var input data.BookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badBodyResponse(w, r, updateMessages, err)
		return
	}

	// Update refreshes updatedAt and recomputes finished; id and insertedAt stay.
	err = app.models.Books.Update(id, input)
	if err != nil {
		app.bookWriteErrorResponse(w, r, updateMessages, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, success("Buku berhasil diperbarui", nil), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /books/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	// Remove the book; there is no soft delete.
	err := app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, msgDeleteNotFound, nil)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Respond with a success message.
	err = app.writeJSON(w, http.StatusOK, success("Buku berhasil dihapus", nil), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// healthcheckHandler handles GET /healthz.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status":      "available",
		"environment": app.config.environment,
		"version":     appVersion,
		"books":       app.models.Books.Len(),
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
