// Package auth coordinates the locally persisted session token with the remote
// login call. It owns the single fact the rest of the application cares about:
// whether a non-empty session token is stored.
//
// Store persists the token in the keychain namespace; Repository decides when a
// remote login is needed and writes the token only after the server issued one.
package auth

import (
	"context"
)

// TokenStore is the local persistence the Repository depends on.
// An empty token from Token means no token is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Remote exchanges credentials for a session token.
// Every failure is reported as an error; a nil error always comes with a token.
type Remote interface {
	Login(ctx context.Context, id, password string) (string, error)
}
