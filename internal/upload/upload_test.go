package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func TestSaveImageRejectsUnknownExtension(t *testing.T) {
	s := NewSaver(t.TempDir(), "/uploads")
	fh := formFile(t, "image", "malware.exe", []byte("xx"))
	_, err := s.SaveImage(fh, "products")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestSaveImageRejectsOversized(t *testing.T) {
	s := NewSaver(t.TempDir(), "/uploads")
	fh := formFile(t, "image", "big.jpg", []byte("x"))
	fh.Size = MaxImageSize + 1
	_, err := s.SaveImage(fh, "products")
	assert.ErrorContains(t, err, "too large")
}

func TestSaveImageWritesFile(t *testing.T) {
	root := t.TempDir()
	s := NewSaver(root, "/uploads/")

	fh := formFile(t, "image", "photo.PNG", []byte("png-bytes"))
	url, err := s.SaveImage(fh, "brands")
	require.NoError(t, err)

	assert.Regexp(t, `^/uploads/brands/[0-9a-f-]+\.png$`, url)

	matches, err := filepath.Glob(filepath.Join(root, "brands", "*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
