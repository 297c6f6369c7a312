package fs

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestSaveAndReadAvatar(t *testing.T) {
	storage, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	data := pngBytes(t)
	path, err := storage.SaveAvatar(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"), "filename should carry the detected format, got %q", path)

	file, err := storage.Read(path)
	require.NoError(t, err)
	defer file.Close()

	stored, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestSaveAvatarRejections(t *testing.T) {
	t.Run("not an image", func(t *testing.T) {
		storage, err := New(t.TempDir(), 1<<20)
		require.NoError(t, err)

		_, err = storage.SaveAvatar(strings.NewReader("plain text, not pixels"))
		require.Error(t, err)
		var coded *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, 400, coded.StatusCode)
	})

	t.Run("too large", func(t *testing.T) {
		storage, err := New(t.TempDir(), 16)
		require.NoError(t, err)

		_, err = storage.SaveAvatar(bytes.NewReader(pngBytes(t)))
		require.Error(t, err)
		var coded *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, 400, coded.StatusCode)
	})
}

func TestReadMissingAvatar(t *testing.T) {
	storage, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = storage.Read("nope.png")
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestReadDoesNotEscapeRoot(t *testing.T) {
	storage, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = storage.Read("../../etc/passwd")
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err), "traversal should stay anchored under the root")
}

func TestDeleteAvatar(t *testing.T) {
	storage, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	path, err := storage.SaveAvatar(bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(path))
	_, err = storage.Read(path)
	assert.True(t, internal_errors.IsNotFound(err))

	// deleting again is fine
	require.NoError(t, storage.Delete(path))
}
