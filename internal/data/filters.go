package data

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

// Filters holds the optional list constraints parsed from URL query strings.
// Unset constraints match every book; set ones are combined with AND.
type Filters struct {
	Name     string // Case-insensitive substring of the book name; "" means any
	Reading  *bool  // nil means any
	Finished *bool  // nil means any
}

// NewFilters builds Filters from raw query values. reading and finished only
// take effect for the tokens "0" and "1"; anything else leaves them unset.
func NewFilters(name, reading, finished string) Filters {
	return Filters{
		Name:     name,
		Reading:  parseFlag(reading),
		Finished: parseFlag(finished),
	}
}

func parseFlag(s string) *bool {
	if !validator.In(s, "0", "1") {
		return nil
	}
	b := s == "1"
	return &b
}

// matcher evaluates Filters against books. The folded query is computed once
// per list call.
type matcher struct {
	filters Filters
	fold    cases.Caser
	query   string
}

func (f Filters) matcher() *matcher {
	m := &matcher{filters: f, fold: cases.Fold()}
	if f.Name != "" {
		m.query = m.fold.String(f.Name)
	}
	return m
}

func (m *matcher) match(b *Book) bool {
	if m.query != "" && !strings.Contains(m.fold.String(b.Name), m.query) {
		return false
	}
	if m.filters.Reading != nil && b.Reading != *m.filters.Reading {
		return false
	}
	if m.filters.Finished != nil && b.Finished != *m.filters.Finished {
		return false
	}
	return true
}
