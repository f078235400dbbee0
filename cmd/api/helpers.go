// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
)

// json is a drop-in replacement for encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the top-level JSON wrapper type used for all API responses,
// e.g. {"status": "success", "data": {...}} or {"status": "fail", "message": "..."}.
type envelope map[string]any

// success builds a "success" envelope. message and data are omitted when empty.
func success(message string, data envelope) envelope {
	env := envelope{"status": "success"}
	if message != "" {
		env["message"] = message
	}
	if data != nil {
		env["data"] = data
	}
	return env
}

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Book ids are opaque, so any value is passed through to the store.
func (app *applicationDependencies) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

// writeJSON marshals data to JSON, applies any custom headers, sets
// Content-Type to "application/json", writes the status code, and streams the
// body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit and rejects empty bodies and trailing data.
// Unknown fields are ignored.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return errors.New("body must not be larger than 1MB")
		}
		return err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("body must not be empty")
	}

	// Unmarshal fails on anything after the first JSON value.
	return json.Unmarshal(body, dst)
}
