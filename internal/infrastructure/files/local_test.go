package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), strings.NewReader("image-bytes"), "Chair.JPG", "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"), "extension should be preserved lowercase: %s", url)

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalStoreUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), strings.NewReader("a"), "table.png", "image/png")
	require.NoError(t, err)
	second, err := store.Save(context.Background(), strings.NewReader("b"), "table.png", "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLocalStoreNoExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), strings.NewReader("raw"), "upload", "application/octet-stream")
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(url), ".")
}
