// Package mockserver is an in-memory implementation of the library REST API.
// It backs the "stacks mock" command and the client and service tests.
package mockserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

type book struct {
	ID     string `json:"id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Copies int    `json:"copies"`
}

type member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

type loan struct {
	ID         string
	MemberID   string
	BookID     string
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

// Server holds the in-memory state. Lists keep insertion order.
type Server struct {
	mu      sync.Mutex
	books   []*book
	members []*member
	loans   []*loan

	router *chi.Mux
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithClock overrides the time source used for loan timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates an empty server with all routes mounted under /api
func New(logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router: chi.NewRouter(),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	s.router.Use(s.logRequests)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleCreateBook)
			r.Get("/{id}", s.handleGetBook)
			r.Put("/{id}", s.handleUpdateBook)
			r.Delete("/{id}", s.handleDeleteBook)
		})
		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.handleListMembers)
			r.Post("/", s.handleCreateMember)
			r.Get("/{id}", s.handleGetMember)
			r.Put("/{id}", s.handleUpdateMember)
			r.Delete("/{id}", s.handleDeleteMember)
		})
		r.Route("/loans", func(r chi.Router) {
			r.Get("/", s.handleListLoans)
			r.Post("/", s.handleCreateLoan)
			r.Put("/{id}/return", s.handleReturnLoan)
		})
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("mock request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"requestID", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

// === Responses ===

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// paginate slices items by the page and limit query parameters.
// Without a positive limit the whole list is returned.
func paginate[T any](r *http.Request, items []T) []T {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		return items
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

func newID() string {
	return uuid.NewString()
}

// openLoansFor counts unreturned loans of a member. Caller holds s.mu.
func (s *Server) openLoansFor(memberID string) int {
	count := 0
	for _, l := range s.loans {
		if l.MemberID == memberID && l.ReturnedAt == nil {
			count++
		}
	}
	return count
}

// Seed loads a small demo data set
func (s *Server) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.books = []*book{
		{ID: newID(), ISBN: "9780441172719", Title: "Dune", Author: "Frank Herbert", Copies: 3},
		{ID: newID(), ISBN: "9780553293357", Title: "Foundation", Author: "Isaac Asimov", Copies: 2},
		{ID: newID(), ISBN: "9780547928227", Title: "The Hobbit", Author: "J.R.R. Tolkien", Copies: 4},
		{ID: newID(), ISBN: "9780060850524", Title: "Brave New World", Author: "Aldous Huxley", Copies: 0},
		{ID: newID(), ISBN: "9780451524935", Title: "1984", Author: "George Orwell", Copies: 1},
	}
	s.members = []*member{
		{ID: newID(), Name: "Ada Lovelace", Email: "ada@example.com", JoinedAt: now.AddDate(0, -6, 0)},
		{ID: newID(), Name: "Alan Turing", Email: "alan@example.com", JoinedAt: now.AddDate(0, -3, 0)},
		{ID: newID(), Name: "Grace Hopper", Email: "grace@example.com", JoinedAt: now.AddDate(0, -1, 0)},
	}
	returned := now.AddDate(0, 0, -2)
	s.loans = []*loan{
		{ID: newID(), MemberID: s.members[0].ID, BookID: s.books[0].ID, LoanedAt: now.AddDate(0, 0, -3), DueAt: now.AddDate(0, 0, 11)},
		{ID: newID(), MemberID: s.members[1].ID, BookID: s.books[1].ID, LoanedAt: now.AddDate(0, 0, -20), DueAt: now.AddDate(0, 0, -6)},
		{ID: newID(), MemberID: s.members[2].ID, BookID: s.books[2].ID, LoanedAt: now.AddDate(0, 0, -10), DueAt: now.AddDate(0, 0, 4), ReturnedAt: &returned},
	}
}
