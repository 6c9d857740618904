package mockserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestPaginateBooks(t *testing.T) {
	s := New(nil)
	for _, isbn := range []string{"1", "2", "3"} {
		rec := do(t, s, http.MethodPost, "/api/books", map[string]any{"isbn": isbn, "title": "T" + isbn, "author": "A", "copies": 1})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var page []book
	rec := do(t, s, http.MethodGet, "/api/books?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page, 1)
	assert.Equal(t, "3", page[0].ISBN)

	rec = do(t, s, http.MethodGet, "/api/books?page=5&limit=2", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateBookValidation(t *testing.T) {
	s := New(nil)

	rec := do(t, s, http.MethodPost, "/api/books", map[string]any{"isbn": "1", "title": "", "author": "A", "copies": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")

	do(t, s, http.MethodPost, "/api/books", map[string]any{"isbn": "1", "title": "T", "author": "A", "copies": 1})
	rec = do(t, s, http.MethodPost, "/api/books", map[string]any{"isbn": "1", "title": "T2", "author": "A", "copies": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoanLifecycle(t *testing.T) {
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := New(nil, WithClock(func() time.Time { return fixed }))

	var b book
	rec := do(t, s, http.MethodPost, "/api/books", map[string]any{"isbn": "1", "title": "Dune", "author": "Herbert", "copies": 1})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	var m member
	rec = do(t, s, http.MethodPost, "/api/members", map[string]any{"name": "Ada", "email": "ada@example.com"})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))

	var l loanResponse
	rec = do(t, s, http.MethodPost, "/api/loans", map[string]any{"memberId": m.ID, "bookId": b.ID, "dueAt": "2026-05-15"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Equal(t, "Ada", l.MemberID.Name)
	assert.Nil(t, l.ReturnedAt)

	// Last copy is out
	rec = do(t, s, http.MethodPost, "/api/loans", map[string]any{"memberId": m.ID, "bookId": b.ID, "dueAt": "2026-05-15"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/loans/"+l.ID+"/return", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	require.NotNil(t, l.ReturnedAt)
	first := *l.ReturnedAt

	// Second return keeps the original timestamp
	fixed = fixed.Add(time.Hour)
	rec = do(t, s, http.MethodPut, "/api/loans/"+l.ID+"/return", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.True(t, first.Equal(*l.ReturnedAt))
	assert.Equal(t, 1, s.findBook(b.ID).Copies)
}

func TestDeletedMemberBecomesNullReference(t *testing.T) {
	s := New(nil)
	s.Seed()
	memberID := s.members[0].ID

	rec := do(t, s, http.MethodDelete, "/api/members/"+memberID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var loans []map[string]any
	rec = do(t, s, http.MethodGet, "/api/loans", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loans))
	require.NotEmpty(t, loans)
	assert.Nil(t, loans[0]["memberId"])
}
