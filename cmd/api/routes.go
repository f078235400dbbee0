// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the router wrapped in the
// middleware chain (outermost first):
//
//	recoverPanic → requestID → logRequests → enableCORS → rateLimit → router
//
// Endpoints:
//
//	POST   /books       – add a book
//	GET    /books       – list books (?name=, ?reading=0|1, ?finished=0|1)
//	GET    /books/:id   – show one book
//	PUT    /books/:id   – replace a book's fields
//	DELETE /books/:id   – delete a book
//	GET    /healthz     – liveness and book count
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodPost, "/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:id", app.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthcheckHandler)

	return app.recoverPanic(app.requestID(app.logRequests(app.enableCORS(app.rateLimit(router)))))
}
