package mockserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mmcdole/stacks/internal/domain"
)

type bookRequest struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Copies *int   `json:"copies"`
}

type memberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loanRequest struct {
	MemberID string `json:"memberId"`
	BookID   string `json:"bookId"`
	DueAt    string `json:"dueAt"`
}

// refResponse is the partial entity embedded in a loan
type refResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

type loanResponse struct {
	ID         string       `json:"id"`
	MemberID   *refResponse `json:"memberId"`
	BookID     *refResponse `json:"bookId"`
	LoanedAt   time.Time    `json:"loanedAt"`
	DueAt      time.Time    `json:"dueAt"`
	ReturnedAt *time.Time   `json:"returnedAt"`
}

// === Books ===

func (s *Server) findBook(id string) *book {
	for _, b := range s.books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate(r, s.books))
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBook(chi.URLParam(r, "id"))
	if b == nil {
		writeError(w, http.StatusNotFound, "Book not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func decodeBook(r *http.Request) (bookRequest, string) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "Invalid request body"
	}
	if strings.TrimSpace(req.ISBN) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" {
		return req, "ISBN, title and author are required"
	}
	if req.Copies == nil || *req.Copies < 0 {
		return req, "Copies must be a non-negative number"
	}
	return req, ""
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	req, problem := decodeBook(r)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		if b.ISBN == req.ISBN {
			writeError(w, http.StatusConflict, "A book with this ISBN already exists")
			return
		}
	}

	b := &book{ID: newID(), ISBN: req.ISBN, Title: req.Title, Author: req.Author, Copies: *req.Copies}
	s.books = append(s.books, b)
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	req, problem := decodeBook(r)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBook(chi.URLParam(r, "id"))
	if b == nil {
		writeError(w, http.StatusNotFound, "Book not found")
		return
	}
	b.ISBN, b.Title, b.Author, b.Copies = req.ISBN, req.Title, req.Author, *req.Copies
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i, b := range s.books {
		if b.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Book not found")
}

// === Members ===

func (s *Server) findMember(id string) *member {
	for _, m := range s.members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate(r, s.members))
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMember(chi.URLParam(r, "id"))
	if m == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func decodeMember(r *http.Request) (memberRequest, string) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "Invalid request body"
	}
	if strings.TrimSpace(req.Name) == "" || !strings.Contains(req.Email, "@") {
		return req, "Name and a valid email are required"
	}
	return req, ""
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	req, problem := decodeMember(r)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if strings.EqualFold(m.Email, req.Email) {
			writeError(w, http.StatusConflict, "A member with this email already exists")
			return
		}
	}

	m := &member{ID: newID(), Name: req.Name, Email: req.Email, JoinedAt: s.now()}
	s.members = append(s.members, m)
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	req, problem := decodeMember(r)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMember(chi.URLParam(r, "id"))
	if m == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}
	m.Name, m.Email = req.Name, req.Email
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i, m := range s.members {
		if m.ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Member not found")
}

// === Loans ===

// loanView embeds the current member and book. Deleted referents become null.
// Caller holds s.mu.
func (s *Server) loanView(l *loan) loanResponse {
	resp := loanResponse{
		ID:         l.ID,
		LoanedAt:   l.LoanedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
	}
	if m := s.findMember(l.MemberID); m != nil {
		resp.MemberID = &refResponse{ID: m.ID, Name: m.Name}
	}
	if b := s.findBook(l.BookID); b != nil {
		resp.BookID = &refResponse{ID: b.ID, Title: b.Title}
	}
	return resp
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := paginate(r, s.loans)
	views := make([]loanResponse, 0, len(page))
	for _, l := range page {
		views = append(views, s.loanView(l))
	}
	writeJSON(w, http.StatusOK, views)
}

func parseDue(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	due, ok := parseDue(req.DueAt)
	if !ok {
		writeError(w, http.StatusBadRequest, "Due date is invalid")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMember(req.MemberID)
	if m == nil {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}
	b := s.findBook(req.BookID)
	if b == nil {
		writeError(w, http.StatusNotFound, "Book not found")
		return
	}
	if b.Copies <= 0 {
		writeError(w, http.StatusBadRequest, "No copies available")
		return
	}
	if s.openLoansFor(m.ID) >= domain.MaxActiveLoans {
		writeError(w, http.StatusBadRequest, "Member has reached the maximum number of loans")
		return
	}

	b.Copies--
	l := &loan{ID: newID(), MemberID: m.ID, BookID: b.ID, LoanedAt: s.now(), DueAt: due}
	s.loans = append(s.loans, l)
	writeJSON(w, http.StatusCreated, s.loanView(l))
}

// handleReturnLoan sets returnedAt once; returning again leaves it untouched.
func (s *Server) handleReturnLoan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for _, l := range s.loans {
		if l.ID != id {
			continue
		}
		if l.ReturnedAt == nil {
			now := s.now()
			l.ReturnedAt = &now
			if b := s.findBook(l.BookID); b != nil {
				b.Copies++
			}
		}
		writeJSON(w, http.StatusOK, s.loanView(l))
		return
	}
	writeError(w, http.StatusNotFound, "Loan not found")
}
