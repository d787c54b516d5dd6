// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/keychain"
	"tokenlogin/cli/internal/logging"
)

// KeyToken is the key holding the session token inside the namespace.
const KeyToken = "token"

// Secrets is the subset of keychain.Manager used by Store.
type Secrets interface {
	Get(key string) (string, error)
	Set(key, value string) error
	ClearAll() error
}

// Store persists the session token in a keychain namespace.
type Store struct {
	secrets Secrets
}

// NewStore returns a Store over the given namespace-scoped secrets.
func NewStore(secrets Secrets) *Store {
	return &Store{secrets: secrets}
}

// Token reads the persisted token. A missing token yields "" and no error;
// any other storage failure is returned as a StorageFailed error.
func (s *Store) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token, err := s.secrets.Get(KeyToken)
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			logging.Log.Debugw("token store: no token")
			return "", nil
		}
		logging.Log.Errorw("token store: read failed", "err", err)
		return "", apperrors.Wrap(apperrors.StorageFailed, "read token", err)
	}
	logging.Log.Debugw("token store: token loaded", "length", len(token))
	return token, nil
}

// SetToken writes or overwrites the token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.secrets.Set(KeyToken, token); err != nil {
		logging.Log.Errorw("token store: write failed", "err", err)
		return apperrors.Wrap(apperrors.StorageFailed, "write token", err)
	}
	logging.Log.Debugw("token store: token saved", "length", len(token))
	return nil
}

// Clear removes all persisted auth data in the namespace, not only the token.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.secrets.ClearAll(); err != nil {
		logging.Log.Errorw("token store: clear failed", "err", err)
		return apperrors.Wrap(apperrors.StorageFailed, "clear namespace", err)
	}
	logging.Log.Debugw("token store: namespace cleared")
	return nil
}
