package seller

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// saveUpload stores an uploaded image under uploadDir/subdir with a
// timestamp-prefixed name and returns the path relative to the static
// root, or "" when no usable file was sent. A missing file is not an
// error: image is optional on every form.
func saveUpload(file *multipart.FileHeader, uploadDir, subdir string) (string, error) {
	if file == nil || file.Filename == "" {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	dir := filepath.Join(uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), filepath.Base(file.Filename))
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return filepath.ToSlash(filepath.Join("uploads", subdir, name)), nil
}

// removeUpload deletes a previously stored image. Best-effort: the row
// mutation must not fail because a file is already gone.
func removeUpload(uploadDir, imagePath string) {
	if imagePath == "" {
		return
	}
	rel := strings.TrimPrefix(imagePath, "uploads/")
	_ = os.Remove(filepath.Join(uploadDir, rel))
}
