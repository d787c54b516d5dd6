// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/keychain"
)

// brokenSecrets fails every operation, standing in for a corrupted store.
type brokenSecrets struct{ err error }

func (b brokenSecrets) Get(string) (string, error) { return "", b.err }
func (b brokenSecrets) Set(string, string) error   { return b.err }
func (b brokenSecrets) ClearAll() error            { return b.err }

func memoryStore(items ...keyring.Item) *Store {
	return NewStore(keychain.New(keyring.NewArrayKeyring(items), keychain.DefaultNamespace))
}

func TestStore_TokenAbsent(t *testing.T) {
	s := memoryStore()

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memoryStore()

	for _, tok := range []string{"tok-abc", "a", "eyJhbGciOiJIUzI1NiJ9.e30.sig"} {
		require.NoError(t, s.SetToken(ctx, tok))
		got, err := s.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, tok, got)
	}
}

func TestStore_RoundTripAcrossRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	open := func() *Store {
		m, err := keychain.Open(keychain.Options{Backend: keychain.BackendFile, FileDir: dir, Passphrase: "pp"})
		require.NoError(t, err)
		return NewStore(m)
	}

	require.NoError(t, open().SetToken(ctx, "tok-restart"))

	got, err := open().Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-restart", got)
}

func TestStore_ClearWipesOtherKeys(t *testing.T) {
	ctx := context.Background()
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: "remember_id", Data: []byte("test")}})
	m := keychain.New(ring, keychain.DefaultNamespace)
	s := NewStore(m)

	require.NoError(t, s.SetToken(ctx, "tok-abc"))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = m.Get("remember_id")
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

func TestStore_StorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	s := NewStore(brokenSecrets{err: errors.New("item is corrupt")})

	_, err := s.Token(ctx)
	assert.True(t, apperrors.Is(err, apperrors.StorageFailed))

	err = s.SetToken(ctx, "tok")
	assert.True(t, apperrors.Is(err, apperrors.StorageFailed))

	err = s.Clear(ctx)
	assert.True(t, apperrors.Is(err, apperrors.StorageFailed))
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := memoryStore()

	assert.ErrorIs(t, s.SetToken(ctx, "tok"), context.Canceled)

	got, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
