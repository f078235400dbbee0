// internal/data/models.go
package data

import (
	"errors"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	// ErrRecordNotFound is returned when no book has the requested id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInsertFailed is returned when a new book could not be stored.
	ErrInsertFailed = errors.New("book could not be inserted")
)

// idLength is the length of generated book ids.
const idLength = 16

// maxIDAttempts bounds how many fresh ids Insert draws before giving up.
const maxIDAttempts = 5

// Models is a top-level container that groups all model types together.
// It is passed around the application via applicationDependencies so every
// handler reaches the same store.
type Models struct {
	Books *BookModel
}

// NewModels constructs a Models value with an empty book store.
// Call this once during application startup.
func NewModels() Models {
	return Models{
		Books: NewBookModel(),
	}
}

// BookModel is the in-memory book collection. Books keep insertion order.
// Every method holds mu for its whole duration, so each call either applies
// completely or not at all.
type BookModel struct {
	mu    sync.RWMutex
	books []*Book

	newID func() (string, error)
	now   func() time.Time
}

// Option customises a BookModel.
type Option func(*BookModel)

// WithIDGenerator replaces the nanoid generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(m *BookModel) { m.newID = gen }
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *BookModel) { m.now = now }
}

// NewBookModel returns an empty store.
func NewBookModel(opts ...Option) *BookModel {
	m := &BookModel{
		books: []*Book{},
		newID: func() (string, error) { return gonanoid.New(idLength) },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Insert validates input, stores it as a new book and returns the generated id.
func (m *BookModel) Insert(input BookInput) (string, error) {
	if err := ValidateBook(input); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.freshID()
	if err != nil {
		return "", err
	}

	now := m.now()
	book := &Book{ID: id, InsertedAt: now, UpdatedAt: now}
	book.apply(input)

	m.books = append(m.books, book)
	return id, nil
}

// freshID draws ids until one is unused. Callers must hold mu.
func (m *BookModel) freshID() (string, error) {
	for range maxIDAttempts {
		id, err := m.newID()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInsertFailed, err)
		}
		if m.indexOf(id) == -1 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no unused id after %d attempts", ErrInsertFailed, maxIDAttempts)
}

// List returns the books matching filters, projected to BookSummary, in
// insertion order.
func (m *BookModel) List(filters Filters) []BookSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	match := filters.matcher()
	books := []BookSummary{}
	for _, b := range m.books {
		if match.match(b) {
			books = append(books, b.summary())
		}
	}
	return books
}

// Get returns a copy of the book with the given id.
// Returns ErrRecordNotFound if no book with that id exists.
func (m *BookModel) Get(id string) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i == -1 {
		return nil, ErrRecordNotFound
	}
	book := *m.books[i]
	return &book, nil
}

// Update replaces every mutable field of the book with the given id.
// input is validated before the lookup, so an invalid payload for an unknown
// id reports the validation error rather than ErrRecordNotFound.
func (m *BookModel) Update(id string, input BookInput) error {
	if err := ValidateBook(input); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return ErrRecordNotFound
	}

	book := m.books[i]
	book.apply(input)

	// updatedAt must move forward even if the clock has not.
	now := m.now()
	if !now.After(book.UpdatedAt) {
		now = book.UpdatedAt.Add(time.Nanosecond)
	}
	book.UpdatedAt = now
	return nil
}

// Delete removes the book with the given id.
// Returns ErrRecordNotFound if no matching record exists.
func (m *BookModel) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return ErrRecordNotFound
	}

	copy(m.books[i:], m.books[i+1:])
	m.books[len(m.books)-1] = nil
	m.books = m.books[:len(m.books)-1]
	return nil
}

// Len returns the number of stored books.
func (m *BookModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}

// indexOf returns the position of id in m.books, or -1. Callers must hold mu.
func (m *BookModel) indexOf(id string) int {
	for i, b := range m.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
