package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/domain"
)

const userAgent = "Stacks/1.0"

// Client implements domain.Backend against the library REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new REST API client. baseURL includes the API prefix,
// e.g. http://localhost:3000/api. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and classifies failures:
// transport errors wrap domain.ErrNetwork, non-2xx responses become *domain.APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := adapter.RequestLogger(c.logger, method, path, requestID)
	log.Debug("api request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("api request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNetwork)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		log.Warn("api error response", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	log.Debug("api response", "status", resp.StatusCode, "bytes", len(respBody))
	return respBody, nil
}

// parseAPIError builds an APIError from an error body. A missing or
// non-JSON body yields an unstructured error with the generic message.
func parseAPIError(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{Status: status}
	var dto errorDTO
	if len(body) > 0 && json.Unmarshal(body, &dto) == nil && dto.Message != "" {
		apiErr.Message = dto.Message
		apiErr.Structured = true
	}
	return apiErr
}

// decode parses a JSON response body into dest
func decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// listQuery encodes page and limit, omitting zero values
func listQuery(opts domain.ListOptions) url.Values {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	return query
}

func resourcePath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}

// === Books ===

// ListBooks returns one page of books
func (c *Client) ListBooks(ctx context.Context, opts domain.ListOptions) ([]domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/books", listQuery(opts), nil)
	if err != nil {
		return nil, err
	}
	var dtos []bookDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}
	return MapBooks(dtos), nil
}

// GetBook returns a single book by id
func (c *Client) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodGet, resourcePath("books", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var dto bookDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	book := MapBook(dto)
	return &book, nil
}

// CreateBook creates a book and returns it with its server-assigned id
func (c *Client) CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/books", nil, mapBookInput(in))
	if err != nil {
		return nil, err
	}
	var dto bookDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	book := MapBook(dto)
	return &book, nil
}

// UpdateBook replaces a book's fields
func (c *Client) UpdateBook(ctx context.Context, id string, in domain.BookInput) (*domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodPut, resourcePath("books", id), nil, mapBookInput(in))
	if err != nil {
		return nil, err
	}
	var dto bookDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	book := MapBook(dto)
	return &book, nil
}

// DeleteBook removes a book. Any 2xx counts as success; the body is ignored.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, resourcePath("books", id), nil, nil)
	return err
}

// === Members ===

// ListMembers returns members
func (c *Client) ListMembers(ctx context.Context, opts domain.ListOptions) ([]domain.Member, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/members", listQuery(opts), nil)
	if err != nil {
		return nil, err
	}
	var dtos []memberDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}
	return MapMembers(dtos), nil
}

// GetMember returns a single member by id
func (c *Client) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	body, err := c.doRequest(ctx, http.MethodGet, resourcePath("members", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var dto memberDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	member := MapMember(dto)
	return &member, nil
}

// CreateMember registers a member
func (c *Client) CreateMember(ctx context.Context, in domain.MemberInput) (*domain.Member, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/members", nil, mapMemberInput(in))
	if err != nil {
		return nil, err
	}
	var dto memberDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	member := MapMember(dto)
	return &member, nil
}

// UpdateMember replaces a member's fields
func (c *Client) UpdateMember(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	body, err := c.doRequest(ctx, http.MethodPut, resourcePath("members", id), nil, mapMemberInput(in))
	if err != nil {
		return nil, err
	}
	var dto memberDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	member := MapMember(dto)
	return &member, nil
}

// DeleteMember removes a member
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, resourcePath("members", id), nil, nil)
	return err
}

// === Loans ===

// ListLoans returns loans with their embedded member and book references
func (c *Client) ListLoans(ctx context.Context, opts domain.ListOptions) ([]domain.Loan, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/loans", listQuery(opts), nil)
	if err != nil {
		return nil, err
	}
	var dtos []loanDTO
	if err := decode(body, &dtos); err != nil {
		return nil, err
	}
	return MapLoans(dtos), nil
}

// CreateLoan lends a book to a member
func (c *Client) CreateLoan(ctx context.Context, in domain.LoanInput) (*domain.Loan, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/loans", nil, mapLoanInput(in))
	if err != nil {
		return nil, err
	}
	var dto loanDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	loan := MapLoan(dto)
	return &loan, nil
}

// ReturnLoan marks a loan as returned
func (c *Client) ReturnLoan(ctx context.Context, id string) (*domain.Loan, error) {
	body, err := c.doRequest(ctx, http.MethodPut, resourcePath("loans", id)+"/return", nil, nil)
	if err != nil {
		return nil, err
	}
	var dto loanDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	loan := MapLoan(dto)
	return &loan, nil
}

// Probe checks reachability with the smallest possible books request
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/books", listQuery(domain.ListOptions{Page: 1, Limit: 1}), nil)
	return err
}

var _ domain.Backend = (*Client)(nil)
