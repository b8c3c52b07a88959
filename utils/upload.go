package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImageType rejects uploads whose extension is outside the allow-list.
var ErrInvalidImageType = errors.New("invalid image type, only JPEG, PNG, JPG are allowed")

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// SaveImage validates the upload's extension, stores the bytes under dir with a
// random UUID name and returns the stored name. The original filename never
// reaches the filesystem, so collisions and path traversal are ruled out.
// A failed write removes the partial file before returning.
func SaveImage(header *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", ErrInvalidImageType
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	storedName := uuid.NewString() + ext
	dstPath := filepath.Join(dir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("close file: %w", err)
	}

	return storedName, nil
}

// RemoveImage deletes a stored image, used to roll back when the owning record
// cannot be created after a successful write.
func RemoveImage(dir, storedName string) {
	if storedName == "" {
		return
	}
	_ = os.Remove(filepath.Join(dir, storedName))
}
