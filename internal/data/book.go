// Package data provides the book records and the in-memory store that owns
// them for the bookshelf API.
package data

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

var (
	// ErrMissingName is returned when a book is written without a name.
	ErrMissingName = errors.New("book name must be provided")

	// ErrReadPageExceedsPageCount is returned when readPage > pageCount.
	ErrReadPageExceedsPageCount = errors.New("readPage must not be greater than pageCount")
)

// Book represents a single book record held by the store.
type Book struct {
	ID         string    `json:"id"`         // 16-character generated identifier
	Name       string    `json:"name"`       // Title of the book
	Year       int       `json:"year"`       // Publication year
	Author     string    `json:"author"`     // Author name
	Summary    string    `json:"summary"`    // Short description
	Publisher  string    `json:"publisher"`  // Name of the publishing company
	PageCount  int       `json:"pageCount"`  // Total number of pages
	ReadPage   int       `json:"readPage"`   // Last page read, never above PageCount
	Finished   bool      `json:"finished"`   // Derived: ReadPage == PageCount
	Reading    bool      `json:"reading"`    // Whether the book is currently being read
	InsertedAt time.Time `json:"insertedAt"` // Set once when the record is created
	UpdatedAt  time.Time `json:"updatedAt"`  // Refreshed on every mutation
}

// BookSummary is the projection returned by list queries.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookInput holds the fields a client supplies when creating or replacing a
// book. finished, id and the timestamps are never taken from the client.
type BookInput struct {
	Name      string `json:"name"      validate:"required"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount" validate:"gte=0"`
	ReadPage  int    `json:"readPage"  validate:"gte=0"`
	Reading   bool   `json:"reading"`
}

// InvalidFieldsError reports field rules that failed after the name and page
// checks passed.
type InvalidFieldsError struct {
	Fields map[string]string
}

func (e *InvalidFieldsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid book: " + strings.Join(parts, "; ")
}

// ValidateBook checks input in a fixed order: the name first, then the
// readPage/pageCount relation, then any remaining field rules.
func ValidateBook(input BookInput) error {
	v := validator.New()
	v.Struct(input)

	// The page relation is checked on the raw values so that it still wins
	// when a count also breaks its own gte rule.
	switch {
	case v.Failed("name", ""):
		return ErrMissingName
	case input.ReadPage > input.PageCount:
		return ErrReadPageExceedsPageCount
	case !v.Valid():
		return &InvalidFieldsError{Fields: v.Errors}
	default:
		return nil
	}
}

// apply copies the mutable fields of input onto b and recomputes Finished.
func (b *Book) apply(input BookInput) {
	b.Name = input.Name
	b.Year = input.Year
	b.Author = input.Author
	b.Summary = input.Summary
	b.Publisher = input.Publisher
	b.PageCount = input.PageCount
	b.ReadPage = input.ReadPage
	b.Reading = input.Reading
	b.Finished = input.ReadPage == input.PageCount
}

func (b *Book) summary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}
