package rest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLoan_ReferenceShapes(t *testing.T) {
	payload := `[
		{"_id":"l1","memberId":{"_id":"m1","name":"Ada"},"bookId":{"_id":"b1","title":"Dune"},
		 "loanedAt":"2026-01-01T10:00:00.000Z","dueAt":"2026-01-15","returnedAt":null},
		{"id":"l2","memberId":"m2","bookId":null,"loanedAt":"2026-01-02T10:00:00Z","dueAt":"2026-01-16T00:00:00Z",
		 "returnedAt":"2026-01-05T08:30:00Z"}
	]`

	var dtos []loanDTO
	require.NoError(t, json.Unmarshal([]byte(payload), &dtos))
	loans := MapLoans(dtos)
	require.Len(t, loans, 2)

	first := loans[0]
	assert.Equal(t, "l1", first.ID)
	assert.Equal(t, "m1", first.MemberID())
	assert.Equal(t, "Ada", first.MemberName())
	assert.Equal(t, "Dune", first.BookTitle())
	assert.Nil(t, first.ReturnedAt)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), first.DueAt)

	second := loans[1]
	assert.Equal(t, "l2", second.ID)
	assert.Equal(t, "m2", second.MemberID())
	// A bare id carries no name
	assert.Equal(t, "Unknown Member", second.MemberName())
	assert.Nil(t, second.Book)
	require.NotNil(t, second.ReturnedAt)
}

func TestMapBook_AcceptsEitherID(t *testing.T) {
	var dtos []bookDTO
	require.NoError(t, json.Unmarshal([]byte(`[{"_id":"a","title":"X"},{"id":"b","title":"Y"}]`), &dtos))
	books := MapBooks(dtos)
	assert.Equal(t, "a", books[0].ID)
	assert.Equal(t, "b", books[1].ID)
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("not a date").IsZero())
	assert.Equal(t, 2026, parseTime("2026-02-03").Year())
	assert.Equal(t, 6, parseTime("2026-02-03T04:05:06.789+00:00").Second())
}
