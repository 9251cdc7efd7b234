package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/apperrors"
)

// DefaultMaxUploadBytes caps uploads at 50 MB.
const DefaultMaxUploadBytes = 50 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// ValidateImage checks size, extension, declared MIME type and decodability
// of an upload. contentType may be empty (some clients omit it); the decode
// check still applies.
func ValidateImage(filename, contentType string, data []byte, maxBytes int64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty upload", apperrors.ErrValidation)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if int64(len(data)) > maxBytes {
		return apperrors.ErrPayloadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: extension %q", apperrors.ErrUnsupportedMedia, ext)
	}
	if contentType != "" && !allowedMIMETypes[contentType] {
		return fmt.Errorf("%w: content type %q", apperrors.ErrUnsupportedMedia, contentType)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: undecodable image: %v", apperrors.ErrValidation, err)
	}
	return nil
}

// RenameImage generates a unique stored name keeping the original extension.
func RenameImage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}
