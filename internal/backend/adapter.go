// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the remote login endpoint.
// It defines the API contract the auth package depends on, the generic response
// envelope used on the wire, and the HTTP implementation.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call the real HTTP endpoint or provide stubs for tests.
type API interface {
	// Login exchanges id and password for a session token.
	// Failures are *errors.E values tagged TransportFailed, MalformedResponse
	// or CredentialsRejected; a nil error always comes with a non-empty token.
	Login(ctx context.Context, id, password string) (string, error)
}

// Envelope is the wire-format wrapper around every response payload.
// Result is carried for completeness; login success is decided by Data alone.
type Envelope[T any] struct {
	Result       string `json:"result"`
	Data         T      `json:"data"`
	ErrorMessage string `json:"errorMessage"`
}

// loginParam is the request body for POST /users/login.
type loginParam struct {
	ID string `json:"id"`
	PW string `json:"pw"`
}
