package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, contents []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	headers := req.MultipartForm.File["image"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestSaveImageRejectsInvalidExtension(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	for _, name := range []string{"evil.exe", "doc.pdf", "noext", "trick.png.gif"} {
		_, err := SaveImage(fileHeader(t, name, []byte("x")), dir)
		assert.ErrorIs(t, err, ErrInvalidImageType, name)
	}

	// Rejection happens before any storage is touched
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveImageStoresUnderUniqueName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	name, err := SaveImage(fileHeader(t, "photo.JPG", []byte("fake image bytes")), dir)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, "photo")
	assert.NotContains(t, name, string(os.PathSeparator))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), data)
}

func TestSaveImageNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveImage(fileHeader(t, "same.png", []byte("a")), dir)
	require.NoError(t, err)
	second, err := SaveImage(fileHeader(t, "same.png", []byte("b")), dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveImage(t *testing.T) {
	dir := t.TempDir()
	name, err := SaveImage(fileHeader(t, "gone.png", []byte("x")), dir)
	require.NoError(t, err)

	RemoveImage(dir, name)
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Removing a blank name is a no-op
	RemoveImage(dir, "")
}
