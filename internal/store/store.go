// Package store persists the CLI's local state as JSON documents.
//
// Each concern (wallet, allowlist, history) is one named document. Corrupt
// or missing documents are reported as absent rather than failing: manual
// tampering with the files under ~/.octorail degrades to empty state, never
// to a crashed process.
package store

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
)

// Store loads and saves named JSON documents.
type Store interface {
	// Load reads the named document into v. Returns false if the document
	// does not exist or cannot be parsed.
	Load(name string, v any) (bool, error)

	// Save writes v as the named document with the given file mode,
	// creating the storage location if needed.
	Save(name string, v any, mode fs.FileMode) error
}

// FileStore keeps each document as a pretty-printed JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// lazily on the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load reads a document from disk. A missing or unparsable file is treated
// as absence of data, not an error.
func (s *FileStore) Load(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// Save writes a document to disk, creating the directory if absent.
// The whole file is replaced on every write.
func (s *FileStore) Save(name string, v any, mode fs.FileMode) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	// WriteFile does not change the mode of an existing file.
	return os.Chmod(path, mode)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	docs map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

// Load reads a document from memory.
func (s *MemStore) Load(name string, v any) (bool, error) {
	data, ok := s.docs[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// Save writes a document to memory. The mode is ignored.
func (s *MemStore) Save(name string, v any, _ fs.FileMode) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.docs[name] = data
	return nil
}

// Corrupt overwrites a stored document with non-JSON bytes. Test helper for
// exercising the corrupt-state degradation paths.
func (s *MemStore) Corrupt(name string) {
	s.docs[name] = []byte("{not json")
}
