package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names used inside the store directory.
const (
	sessionFile = "session.json"
	credsFile   = "credentials.json"
)

// FileStore persists snapshots as JSON files in a directory. It is the
// durable local storage backend for single-station deployments.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// writeFileAtomic writes data and renames it into place so readers never
// observe a partial document.
func (s *FileStore) writeFileAtomic(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// SaveSession overwrites the stored session snapshot.
func (s *FileStore) SaveSession(ctx context.Context, snap *SessionSnapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.writeFileAtomic(sessionFile, data)
}

// LoadSession retrieves the stored snapshot.
func (s *FileStore) LoadSession(ctx context.Context) (*SessionSnapshot, error) {
	data, err := s.readFile(sessionFile)
	if err != nil {
		return nil, err
	}
	var snap SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &snap, nil
}

// SaveCredentials overwrites the stored credentials.
func (s *FileStore) SaveCredentials(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return ErrInvalidSnapshot
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	return s.writeFileAtomic(credsFile, data)
}

// LoadCredentials retrieves stored credentials.
func (s *FileStore) LoadCredentials(ctx context.Context) (*Credentials, error) {
	data, err := s.readFile(credsFile)
	if err != nil {
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &creds, nil
}

// ClearCredentials removes stored credentials.
func (s *FileStore) ClearCredentials(ctx context.Context) error {
	err := os.Remove(filepath.Join(s.dir, credsFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
