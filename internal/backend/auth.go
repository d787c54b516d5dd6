package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/logging"
)

// LoginPath is appended to the base URL for the login call.
const LoginPath = "/users/login"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// maxSnippetRunes caps how much of a body ends up in an error message.
const maxSnippetRunes = 200

// Login calls POST /users/login with { "id", "pw" } and returns the envelope's data
// field as the session token. Exactly one request is made.
func (h *HTTP) Login(ctx context.Context, id, password string) (string, error) {
	b, err := json.Marshal(loginParam{ID: id, PW: password})
	if err != nil {
		return "", apperrors.Wrap(apperrors.TransportFailed, "encode login request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+LoginPath, bytes.NewReader(b))
	if err != nil {
		return "", apperrors.Wrap(apperrors.TransportFailed, "build login request", err)
	}
	reqID := h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	logging.Log.Debugw("login request", "url", req.URL.String(), "request_id", reqID)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.TransportFailed, "post login", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", apperrors.Wrap(apperrors.TransportFailed, "read login response", err)
	}

	logging.Log.Debugw("login response", "status", resp.StatusCode, "request_id", reqID, "body", logging.Mask(string(body)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return "", apperrors.WithStatus(apperrors.CredentialsRejected, resp.StatusCode, rejectionMessage(body, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", apperrors.WithStatus(apperrors.TransportFailed, resp.StatusCode, fmt.Sprintf("login failed: %d %s", resp.StatusCode, snippet(body)))
	}

	var env Envelope[string]
	if err := json.Unmarshal(body, &env); err != nil {
		return "", apperrors.Wrap(apperrors.MalformedResponse, "decode login envelope", err)
	}
	if env.Data == "" {
		return "", apperrors.New(apperrors.CredentialsRejected, rejectionMessage(body, "no token in response"))
	}
	return env.Data, nil
}

// rejectionMessage prefers the envelope's errorMessage when the body is one.
func rejectionMessage(body []byte, fallback string) string {
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && strings.TrimSpace(env.ErrorMessage) != "" {
		return strings.TrimSpace(env.ErrorMessage)
	}
	return fallback
}

// snippet trims a response body for inclusion in an error message.
// It cuts on a rune boundary.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(s) > maxSnippetRunes {
		s = string([]rune(s)[:maxSnippetRunes]) + "..."
	}
	return s
}
