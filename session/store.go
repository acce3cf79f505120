package session

import (
	"errors"
	"sync"
)

// ErrSecretNotFound indicates no value is stored under the requested key.
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore is the capability the session manager requires for persisting
// credentials. Implementations can be backed by an OS keychain, an encrypted
// file, or plain memory; the manager never assumes anything beyond these
// three operations.
type SecretStore interface {
	// Get returns the value stored under key. It returns ErrSecretNotFound
	// if no value exists.
	Get(key string) (string, error)
	// Set stores value under key, overwriting any existing value.
	Set(key string, value string) error
	// Delete removes the value stored under key. Deleting a key that does
	// not exist is not an error.
	Delete(key string) error
}

type memoryStore struct {
	mu      sync.Mutex
	secrets map[string]string
}

// NewMemoryStore returns a SecretStore that holds secrets in process memory.
// Nothing survives process exit. Intended for tests and demos.
func NewMemoryStore() SecretStore {
	return &memoryStore{
		secrets: map[string]string{},
	}
}

func (m *memoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.secrets[key]
	if !ok {
		return "", ErrSecretNotFound
	}
	return value, nil
}

func (m *memoryStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[key] = value
	return nil
}

func (m *memoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.secrets, key)
	return nil
}
