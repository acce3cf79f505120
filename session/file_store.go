package session

import (
	"encoding/json"
	"os"
	"path"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type fileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore returns a SecretStore backed by a JSON file at filePath. The
// file is created on first write with 0600 permissions; its parent directory
// is created if needed.
func NewFileStore(filePath string) SecretStore {
	return &fileStore{
		filePath: filePath,
	}
}

// DefaultStorePath returns the conventional secrets file location for the
// named application: ~/.<appName>/secrets.
func DefaultStorePath(appName string) (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, "."+appName, "secrets"), nil
}

func (f *fileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	secrets, err := f.read()
	if err != nil {
		return "", err
	}
	value, ok := secrets[key]
	if !ok {
		return "", ErrSecretNotFound
	}
	return value, nil
}

func (f *fileStore) Set(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	secrets, err := f.read()
	if err != nil {
		return err
	}
	secrets[key] = value
	return f.write(secrets)
}

func (f *fileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	secrets, err := f.read()
	if err != nil {
		return err
	}
	delete(secrets, key)
	return f.write(secrets)
}

func (f *fileStore) read() (map[string]string, error) {
	secretsBytes, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "error reading secrets file %s", f.filePath)
	}
	secrets := map[string]string{}
	if err := json.Unmarshal(secretsBytes, &secrets); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing secrets file %s",
			f.filePath,
		)
	}
	return secrets, nil
}

func (f *fileStore) write(secrets map[string]string) error {
	dir := path.Dir(f.filePath)
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "error checking for existence of %s", dir)
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "error creating %s", dir)
		}
	}
	secretsBytes, err := json.Marshal(secrets)
	if err != nil {
		return errors.Wrap(err, "error marshaling secrets")
	}
	if err := os.WriteFile(f.filePath, secretsBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", f.filePath)
	}
	return nil
}
