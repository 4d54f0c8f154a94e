package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	storeTests(t, store)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_MalformedSession(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("garbage"), 0o600))

	_, err = store.LoadSession(t.Context())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(t.Context(), sampleSnapshot()))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.LoadSession(t.Context())
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot().Topic, got.Topic)
}
