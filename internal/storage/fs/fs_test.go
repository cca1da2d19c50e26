package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveImage(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	relPath, err := storage.SaveImage(strings.NewReader("pixels"), ".jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "posts"+string(filepath.Separator)), "path %q must live under posts/", relPath)
	assert.True(t, strings.HasSuffix(relPath, ".jpg"))

	data, err := os.ReadFile(filepath.Join(storage.Root(), relPath))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestSaveImageUniqueNames(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := storage.SaveImage(strings.NewReader("a"), ".png")
	require.NoError(t, err)
	second, err := storage.SaveImage(strings.NewReader("b"), ".png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDelete(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	relPath, err := storage.SaveImage(strings.NewReader("gone soon"), ".gif")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(relPath))
	_, err = os.Stat(filepath.Join(storage.Root(), relPath))
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, storage.Delete(relPath))
}
