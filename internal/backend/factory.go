// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"time"
)

// Option customizes the HTTP client built by New.
type Option func(*HTTP)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		h.userAgent = ua
	}
}

// New creates the HTTP backend bound to a fixed base URL.
func New(baseURL string, opts ...Option) *HTTP {
	h := newHTTP(baseURL)
	for _, opt := range opts {
		opt(h)
	}
	return h
}
