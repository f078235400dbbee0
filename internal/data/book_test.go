package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBook(t *testing.T) {
	tests := []struct {
		name    string
		input   BookInput
		wantErr error
	}{
		{"valid", BookInput{Name: "A", PageCount: 10, ReadPage: 5}, nil},
		{"valid finished", BookInput{Name: "A", PageCount: 10, ReadPage: 10}, nil},
		{"valid zero pages", BookInput{Name: "A"}, nil},
		{"missing name", BookInput{PageCount: 10, ReadPage: 5}, ErrMissingName},
		{"missing name and over-read", BookInput{PageCount: 10, ReadPage: 50}, ErrMissingName},
		{"over-read", BookInput{Name: "A", PageCount: 10, ReadPage: 11}, ErrReadPageExceedsPageCount},
		{"negative page count", BookInput{Name: "A", PageCount: -1, ReadPage: 0}, ErrReadPageExceedsPageCount},
		{"negative counts with over-read", BookInput{Name: "A", PageCount: -5, ReadPage: -1}, ErrReadPageExceedsPageCount},
		{"negative page count with over-read", BookInput{Name: "A", PageCount: -5, ReadPage: 3}, ErrReadPageExceedsPageCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBook(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateBook_NegativeCounts(t *testing.T) {
	err := ValidateBook(BookInput{Name: "A", PageCount: -5, ReadPage: -10})

	var fieldsErr *InvalidFieldsError
	require.ErrorAs(t, err, &fieldsErr)
	assert.Equal(t, map[string]string{
		"pageCount": "must be greater than or equal to 0",
		"readPage":  "must be greater than or equal to 0",
	}, fieldsErr.Fields)
	assert.Equal(t, "invalid book: pageCount must be greater than or equal to 0; readPage must be greater than or equal to 0", err.Error())
}

func TestBook_ApplyIgnoresClientFinished(t *testing.T) {
	b := &Book{ID: "x", Finished: true}
	b.apply(BookInput{Name: "A", PageCount: 10, ReadPage: 3})

	assert.Equal(t, "x", b.ID)
	assert.False(t, b.Finished)
	assert.Equal(t, BookSummary{ID: "x", Name: "A"}, b.summary())
}
