package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "wordsmith"))

	require.NoError(t, s.Save(OpenAIAPIKey, "  sk-test \n"))

	got, err := s.Load(OpenAIAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", got)

	info, err := os.Stat(filepath.Join(s.Dir(), OpenAIAPIKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Save(GeminiAPIKey, "first"))
	require.NoError(t, s.Save(GeminiAPIKey, "second"))

	got, err := s.Load(GeminiAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSaveRestrictsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, OpenAIOrgID)
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, NewStore(dir).Save(OpenAIOrgID, "org-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveEmpty(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.ErrorIs(t, s.Save(OpenAIAPIKey, "   "), ErrEmptyValue)
}

func TestLoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"))

	got, err := s.Load(OpenAIAPIKey)
	require.NoError(t, err)
	assert.Empty(t, got)
}
