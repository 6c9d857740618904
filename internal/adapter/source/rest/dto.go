package rest

import (
	"bytes"
	"encoding/json"
)

// bookDTO is the wire form of a book. Backends keyed by document stores send
// "_id" instead of "id"; both are accepted.
type bookDTO struct {
	ID      string `json:"id,omitempty"`
	MongoID string `json:"_id,omitempty"`
	ISBN    string `json:"isbn"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Copies  int    `json:"copies"`
}

type memberDTO struct {
	ID       string `json:"id,omitempty"`
	MongoID  string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinedAt string `json:"joinedAt,omitempty"`
}

// refDTO is a loan's reference to a member or book. On the wire it is either
// an embedded (partial) object, a bare id string, or null.
type refDTO struct {
	Present bool
	ID      string
	Name    string
	Title   string
}

func (r *refDTO) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = refDTO{}
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		// A bare id carries no display fields; treat an empty id as missing
		*r = refDTO{Present: id != "", ID: id}
		return nil
	}

	var obj struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = refDTO{
		Present: true,
		ID:      firstNonEmpty(obj.ID, obj.MongoID),
		Name:    obj.Name,
		Title:   obj.Title,
	}
	return nil
}

type loanDTO struct {
	ID         string  `json:"id,omitempty"`
	MongoID    string  `json:"_id,omitempty"`
	Member     refDTO  `json:"memberId"`
	Book       refDTO  `json:"bookId"`
	LoanedAt   string  `json:"loanedAt"`
	DueAt      string  `json:"dueAt"`
	ReturnedAt *string `json:"returnedAt"`
}

// loanRequestDTO is the POST /loans body
type loanRequestDTO struct {
	MemberID string `json:"memberId"`
	BookID   string `json:"bookId"`
	DueAt    string `json:"dueAt"` // YYYY-MM-DD
}

// errorDTO is the body of a non-2xx response
type errorDTO struct {
	Message string `json:"message"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
