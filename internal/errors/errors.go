// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so that callers can tell a network failure from a
// rejected login or a broken secret store without parsing error strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// TransportFailed indicates the login request never produced a usable HTTP
	// response (dial, TLS, timeout, cancelled context, non-2xx status).
	TransportFailed Kind = "transport_failed"
	// MalformedResponse indicates the server answered but the body was not a
	// decodable response envelope.
	MalformedResponse Kind = "malformed_response"
	// CredentialsRejected indicates the server refused the id/password pair.
	CredentialsRejected Kind = "credentials_rejected"
	// StorageFailed indicates the local token store could not be read or written.
	StorageFailed Kind = "storage_failed"
	// StorageUnavailable indicates no usable secret store backend could be opened.
	StorageUnavailable Kind = "storage_unavailable"
	// ConfigInvalid indicates the configuration could not be loaded or validated.
	ConfigInvalid Kind = "config_invalid"
)

// Remote reports whether the kind originates from the remote login call.
func (k Kind) Remote() bool {
	return k == TransportFailed || k == MalformedResponse || k == CredentialsRejected
}

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
	// Status is the HTTP status when the server answered; 0 otherwise.
	Status int
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// WithStatus records that the server answered with an HTTP status.
func WithStatus(kind Kind, status int, msg string) *E {
	return &E{Kind: kind, Message: msg, Status: status}
}

// StatusOf returns the HTTP status of the first *E in err's chain that has one.
func StatusOf(err error) int {
	var e *E
	for err != nil {
		if !stderrors.As(err, &e) {
			return 0
		}
		if e.Status != 0 {
			return e.Status
		}
		err = e.Err
	}
	return 0
}

// KindOf returns the kind of the first *E in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
