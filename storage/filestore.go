package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore persists records as <dir>/<collection>/<key>.json. The
// filesystem is injected so tests can run on afero's in-memory fs while
// production uses the OS filesystem.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

// Create writes a new record and fails with ErrExists if the key is
// already taken. Creation is exclusive, never an overwrite.
func (s *FileStore) Create(collection, key string, data interface{}) error {
	if err := s.fs.MkdirAll(filepath.Join(s.dir, collection), 0o755); err != nil {
		return fmt.Errorf("creating collection %s: %w", collection, err)
	}

	file, err := s.fs.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if isExist(err) {
			return ErrExists
		}
		return fmt.Errorf("creating record %s/%s: %w", collection, key, err)
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(data)
}

// Read loads the record for key into data.
func (s *FileStore) Read(collection, key string, data interface{}) error {
	raw, err := afero.ReadFile(s.fs, s.path(collection, key))
	if err != nil {
		if isNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("reading record %s/%s: %w", collection, key, err)
	}
	return json.Unmarshal(raw, data)
}

// Update overwrites an existing record and fails with ErrNotFound if the
// key does not exist yet.
func (s *FileStore) Update(collection, key string, data interface{}) error {
	file, err := s.fs.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if isNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("updating record %s/%s: %w", collection, key, err)
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(data)
}

// Delete removes the record for key.
func (s *FileStore) Delete(collection, key string) error {
	if err := s.fs.Remove(s.path(collection, key)); err != nil {
		if isNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting record %s/%s: %w", collection, key, err)
	}
	return nil
}

// List returns the keys of every record in the collection. A collection
// that was never written to lists as empty.
func (s *FileStore) List(collection string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, filepath.Join(s.dir, collection))
	if err != nil {
		if isNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing collection %s: %w", collection, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return keys, nil
}

func (s *FileStore) path(collection, key string) string {
	return filepath.Join(s.dir, collection, key+".json")
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, afero.ErrFileNotFound)
}

func isExist(err error) bool {
	return os.IsExist(err) || errors.Is(err, afero.ErrFileExists)
}
