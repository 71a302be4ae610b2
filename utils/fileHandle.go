package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scholaria/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// allowedUploadTypes mirrors the material upload whitelist: PDF, Word
// documents, common images and plain text.
var allowedUploadTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
	"image/gif",
	"text/plain",
}

// AllowedUploadType reports whether the declared MIME type is accepted for
// material uploads. Optional parameters (charset etc.) are ignored.
func AllowedUploadType(mime string) bool {
	base, _, _ := strings.Cut(mime, ";")
	base = strings.TrimSpace(base)
	for _, t := range allowedUploadTypes {
		if t == base {
			return true
		}
	}
	return false
}

// ValidateUpload rejects a file before anything is written: oversized files,
// non-whitelisted declared types, and files whose sniffed content does not
// match any whitelisted type.
func ValidateUpload(file *multipart.FileHeader) error {
	if file.Size > config.AppConfig.MaxFileSize {
		return fmt.Errorf("file exceeds the maximum size of %d bytes", config.AppConfig.MaxFileSize)
	}

	declared := file.Header.Get("Content-Type")
	if !AllowedUploadType(declared) {
		return fmt.Errorf("invalid file type. Only PDF, DOC, DOCX, images, and text files are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return err
	}
	for _, t := range allowedUploadTypes {
		if detected.Is(t) {
			return nil
		}
	}
	return fmt.Errorf("file content does not match an allowed type")
}

// SaveUploadedFile stores the file under destDir with a collision-free name
// and returns the stored filename.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// file-<timestamp>-<random><ext>, same scheme the upload URL exposes
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("file-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}

// GetFileURL maps a stored filename to its public URL
func GetFileURL(storedName string) string {
	if storedName == "" {
		return ""
	}
	return "/uploads/" + storedName
}

// UploadPath resolves a material's fileUrl back to its on-disk location.
func UploadPath(fileURL string) string {
	return filepath.Join(config.AppConfig.UploadDir, filepath.Base(fileURL))
}

// RemoveUploadedFile deletes a stored file. A missing file is not an error.
func RemoveUploadedFile(fileURL string) error {
	err := os.Remove(UploadPath(fileURL))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CanPreview reports whether a material type is safe to render inline.
func CanPreview(fileType string) bool {
	return strings.HasPrefix(fileType, "image/") ||
		fileType == "application/pdf" ||
		fileType == "text/plain"
}
