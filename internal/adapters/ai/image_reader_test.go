package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileImageReader_ReadBase64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate.jpg")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	var reader FileImageReader

	t.Run("Plain path", func(t *testing.T) {
		got, err := reader.ReadBase64(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8=", got)
	})

	t.Run("File URL", func(t *testing.T) {
		got, err := reader.ReadBase64(context.Background(), "file://"+path)
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8=", got)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := reader.ReadBase64(context.Background(), filepath.Join(dir, "missing.jpg"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := reader.ReadBase64(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
