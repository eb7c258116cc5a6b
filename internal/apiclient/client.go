// Package apiclient talks to the contacts HTTP API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

const contactsPath = "/api/contacts"

// ErrNotFound matches any HTTPError with status 404
var ErrNotFound = errors.New("not found")

// HTTPError represents a non-2xx response returned by the API
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status=%d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// Client issues requests against the contacts API. It never retries and
// sets no timeout of its own; callers bound requests with their context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
}

// New creates a Client for the API served at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("apiclient: base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: unsupported URL scheme %q", parsed.Scheme)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches every contact
func (c *Client) List(ctx context.Context) ([]contact.Contact, error) {
	var contacts []contact.Contact
	if err := c.do(ctx, http.MethodGet, contactsPath, nil, &contacts); err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	return contacts, nil
}

// Create stores a new contact. The contact must carry its ID.
func (c *Client) Create(ctx context.Context, ct contact.Contact) error {
	if err := c.do(ctx, http.MethodPost, contactsPath, ct, nil); err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}
	return nil
}

// Update replaces the fields of the contact with the given ID
func (c *Client) Update(ctx context.Context, id string, f contact.Fields) error {
	body := contact.Contact{}.WithFields(f)
	if err := c.do(ctx, http.MethodPut, contactPath(id), body, nil); err != nil {
		return fmt.Errorf("updating contact %s: %w", id, err)
	}
	return nil
}

// Delete removes the contact with the given ID
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, contactPath(id), nil, nil); err != nil {
		return fmt.Errorf("deleting contact %s: %w", id, err)
	}
	return nil
}

func contactPath(id string) string {
	return contactsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	// path is already escaped; JoinPath keeps any prefix of the base URL
	target := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	for k, values := range c.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the "error" field of a JSON error body
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
