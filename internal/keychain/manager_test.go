// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"sync"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFile(t *testing.T, dir string) *Manager {
	t.Helper()
	m, err := Open(Options{Backend: BackendFile, FileDir: dir, Passphrase: "test-passphrase"})
	require.NoError(t, err)
	return m
}

func TestManager_GetMissing(t *testing.T) {
	m := New(keyring.NewArrayKeyring(nil), "")

	_, err := m.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, DefaultNamespace, m.Namespace())
}

func TestManager_SetGetRemove(t *testing.T) {
	m := New(keyring.NewArrayKeyring(nil), "ns")

	require.NoError(t, m.Set("token", "tok-1"))
	require.NoError(t, m.Set("token", "tok-2"))

	v, err := m.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", v)

	require.NoError(t, m.remove("token"))
	require.NoError(t, m.remove("token"))
	_, err = m.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_ClearAllWipesNamespace(t *testing.T) {
	m := New(keyring.NewArrayKeyring([]keyring.Item{
		{Key: "token", Data: []byte("tok")},
		{Key: "last_id", Data: []byte("test")},
	}), "ns")

	require.NoError(t, m.ClearAll())

	keys, err := m.ring.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestManager_FileBackendSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := openFile(t, dir)
	require.NoError(t, first.Set("token", "tok-durable"))

	second := openFile(t, dir)
	v, err := second.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "tok-durable", v)

	require.NoError(t, second.ClearAll())
	_, err = openFile(t, dir).Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_ConcurrentWritesLastWins(t *testing.T) {
	m := New(keyring.NewArrayKeyring(nil), "ns")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set("token", "tok")
			_, _ = m.Get("token")
		}()
	}
	wg.Wait()

	v, err := m.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
}

func TestAllowedBackends(t *testing.T) {
	assert.Equal(t, []keyring.BackendType{keyring.FileBackend}, allowedBackends(BackendFile))
	assert.Equal(t, []keyring.BackendType{keyring.PassBackend}, allowedBackends("pass"))
	assert.Contains(t, allowedBackends(BackendAuto), keyring.FileBackend)
}
