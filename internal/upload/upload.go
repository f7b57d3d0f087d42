// Package upload stores multipart image files under a local uploads
// directory and hands back the public URL path for the saved file.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20 // 5 MB

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type Saver struct {
	root    string // filesystem directory, e.g. "uploads"
	baseURL string // public prefix, e.g. "/uploads"
}

func NewSaver(root, baseURL string) *Saver {
	return &Saver{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// SaveImage validates and writes the uploaded file into root/subdir with a
// random name, returning the URL path clients should store.
func (s *Saver) SaveImage(fh *multipart.FileHeader, subdir string) (string, error) {
	if fh.Size > MaxImageSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", fh.Size, MaxImageSize)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.baseURL + "/" + subdir + "/" + name, nil
}

// Root returns the filesystem directory served at the base URL.
func (s *Saver) Root() string { return s.root }
