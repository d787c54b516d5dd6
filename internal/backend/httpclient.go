package backend

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTP implements API over the REST login endpoint.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:8080/api")
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// userAgent is sent with every request
	userAgent string
}

// newHTTP creates a new HTTP client with the given base URL.
// It configures a 10-second timeout for all requests.
func newHTTP(baseURL string) *HTTP {
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: "tokenlogin-cli/1.0",
	}
}

// BaseURL returns the normalized base URL.
func (h *HTTP) BaseURL() string {
	return h.baseURL
}

// setStandardHeaders sets headers shared by every request and returns the
// request ID used to correlate log lines with server logs.
func (h *HTTP) setStandardHeaders(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", id)
	return id
}
