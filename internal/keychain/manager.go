// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe, namespace-scoped secret storage for tokenlogin.
// It manages all interactions with the OS keychain/credential store (or an
// encrypted file store where no OS store exists), exposing a small key-value
// interface over a single private namespace.
//
// Every Manager is bound to one namespace. ClearAll wipes every key in that
// namespace, which is how logout resets all persisted auth data at once.
package keychain

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	apperrors "tokenlogin/cli/internal/errors"
)

// ErrNotFound is returned by Get when the key has never been set or was removed.
var ErrNotFound = errors.New("key not found")

// DefaultNamespace identifies the private namespace holding auth data.
const DefaultNamespace = "user_preferences"

// Backend names accepted by Options.Backend besides the keyring backend types.
const (
	BackendAuto = "auto"
	BackendFile = "file"
)

// Manager provides serialized operations on one keyring namespace.
type Manager struct {
	mu        sync.RWMutex
	ring      keyring.Keyring
	namespace string
}

// Options configures Open.
type Options struct {
	// Namespace scopes every key; defaults to DefaultNamespace.
	Namespace string
	// Backend is "auto", "file", or a keyring backend type name.
	Backend string
	// FileDir is the parent directory for the file backend.
	FileDir string
	// Passphrase unlocks the file backend. Empty means prompt on the terminal.
	Passphrase string
}

// Open opens the configured keyring backend for the namespace.
func Open(opts Options) (*Manager, error) {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}

	cfg := keyring.Config{
		ServiceName:     opts.Namespace,
		AllowedBackends: allowedBackends(opts.Backend),
		PassPrefix:      opts.Namespace,
		KWalletAppID:    opts.Namespace,
		KWalletFolder:   opts.Namespace,
	}

	// Hint prefixes where supported to minimize namespace collisions
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = opts.Namespace
	}

	if opts.FileDir != "" {
		cfg.FileDir = filepath.Join(opts.FileDir, opts.Namespace)
	}
	if opts.Passphrase != "" {
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.Passphrase)
	} else {
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StorageUnavailable, "open keyring", err)
	}

	return New(ring, opts.Namespace), nil
}

// New wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func New(ring keyring.Keyring, namespace string) *Manager {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Manager{ring: ring, namespace: namespace}
}

// allowedBackends maps the configured backend name to keyring backend types.
func allowedBackends(name string) []keyring.BackendType {
	switch name {
	case "", BackendAuto:
		switch runtime.GOOS {
		case "darwin":
			return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
		case "windows":
			return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
		default:
			return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend, keyring.FileBackend}
		}
	case BackendFile:
		return []keyring.BackendType{keyring.FileBackend}
	default:
		return []keyring.BackendType{keyring.BackendType(name)}
	}
}

// Namespace returns the namespace this manager is bound to.
func (m *Manager) Namespace() string {
	return m.namespace
}

// Get retrieves a value. It returns ErrNotFound when the key is absent.
// This method is thread-safe.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if err != nil {
		if isNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(it.Data), nil
}

// Set stores or overwrites a value.
// This method is thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: m.namespace + " " + key,
	})
}

// ClearAll removes every key in the namespace.
// This method is thread-safe and should be used with caution.
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, err := m.ring.Keys()
	if err != nil {
		return err
	}
	var errs []error
	for _, k := range keys {
		if err := m.remove(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// remove deletes one key; an absent key is not an error. m.mu must be held.
func (m *Manager) remove(key string) error {
	if err := m.ring.Remove(key); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// isNotFound covers the sentinel and the raw file-backend error for a missing item.
func isNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist)
}
