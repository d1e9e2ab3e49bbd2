// Package tokenstore persists the CLI's API token in a credentials file.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
)

// Key is the fixed field the token lives under.
const Key = "token"

type FileStore struct {
	path string
}

// DefaultPath is $HOME/.polijecare/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".polijecare", "credentials.json"), nil
}

// New uses path, or DefaultPath when path is empty.
func New(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) read() (map[string]string, error) {
	data := map[string]string{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if len(b) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode credentials %s: %w", s.path, err)
	}
	return data, nil
}

// Token implements apiclient.TokenSource.
func (s *FileStore) Token(context.Context) (string, error) {
	data, err := s.read()
	if err != nil {
		return "", err
	}
	t := data[Key]
	if t == "" {
		return "", apiclient.ErrNoToken
	}
	return t, nil
}

// Save writes token with owner-only permissions, keeping other keys intact.
func (s *FileStore) Save(token string) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	data[Key] = token
	return s.write(data)
}

// Clear removes the token. A missing file is not an error.
func (s *FileStore) Clear() error {
	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data[Key]; !ok {
		return nil
	}
	delete(data, Key)
	return s.write(data)
}

func (s *FileStore) write(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
