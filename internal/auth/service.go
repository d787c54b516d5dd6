// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/logging"
)

// Repository centralizes authentication decisions over the local token store
// and the remote login call.
type Repository struct {
	store  TokenStore
	remote Remote
}

// NewRepository constructs a Repository from its two collaborators.
func NewRepository(store TokenStore, remote Remote) *Repository {
	return &Repository{store: store, remote: remote}
}

// Login returns true when a session token is stored after the call.
//
// An already stored token short-circuits the call: the server is not asked to
// re-validate it. Otherwise the remote is called once and the token it returns
// is persisted. On a remote failure Login returns false with the tagged remote
// error and nothing is written. Storage failures are always returned.
func (r *Repository) Login(ctx context.Context, id, password string) (bool, error) {
	loggedIn, err := r.IsLoggedIn(ctx)
	if err != nil {
		return false, err
	}
	if loggedIn {
		logging.Log.Debugw("login skipped: token already stored")
		return true, nil
	}

	token, err := r.remote.Login(ctx, id, password)
	if err != nil {
		kind := apperrors.KindOf(err)
		if kind.Remote() {
			logging.Log.Debugw("login failed", "id", id, "kind", kind, "err", logging.Mask(err.Error()))
		} else {
			logging.Log.Warnw("login failed with an untagged remote error", "id", id, "err", logging.Mask(err.Error()))
		}
		return false, err
	}
	if token == "" {
		return false, apperrors.New(apperrors.CredentialsRejected, "empty token")
	}

	if err := r.store.SetToken(ctx, token); err != nil {
		return false, err
	}
	logging.Log.Infow("login succeeded", "id", id)
	return true, nil
}

// IsLoggedIn reports whether a non-empty token is stored.
func (r *Repository) IsLoggedIn(ctx context.Context) (bool, error) {
	token, err := r.store.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// CurrentToken returns the stored token, or "" when none is stored.
func (r *Repository) CurrentToken(ctx context.Context) (string, error) {
	return r.store.Token(ctx)
}

// Logout wipes all persisted auth data.
func (r *Repository) Logout(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return err
	}
	logging.Log.Infow("logged out")
	return nil
}
