// Package credentials keeps API keys in small owner-only files under the
// user's config directory.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Known credential names.
const (
	OpenAIAPIKey = "openai_api_key"
	OpenAIOrgID  = "openai_org_id"
	GeminiAPIKey = "gemini_api_key"
)

// ErrEmptyValue is returned when saving a blank credential.
var ErrEmptyValue = errors.New("credential value is empty")

// Store reads and writes credential files in one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is $HOME/.config/wordsmith.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wordsmith"), nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes value for name with mode 0600.
func (s *Store) Save(name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	path := s.path(name)
	if err := os.WriteFile(path, []byte(value+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict %s: %w", name, err)
	}

	return nil
}

// Load returns the stored value for name, or "" if none was saved.
func (s *Store) Load(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
