package services

import (
	"mime"
	"path/filepath"
	"strings"

	"talentfolio-backend/internal/apperr"
)

const (
	// MaxMediaFileSize bounds a single uploaded project media file.
	MaxMediaFileSize = 50 << 20

	// MaxProfileImageSize bounds avatar and banner uploads.
	MaxProfileImageSize = 10 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ResolveContentType returns the declared content type, falling back to the
// file extension when the declaration is missing or generic.
func ResolveContentType(filename, declared string) string {
	declared = strings.TrimSpace(declared)
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = declared[:i]
	}
	if declared != "" && declared != "application/octet-stream" {
		return strings.ToLower(declared)
	}
	byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if i := strings.Index(byExt, ";"); i >= 0 {
		byExt = byExt[:i]
	}
	if byExt != "" {
		return strings.ToLower(byExt)
	}
	return "application/octet-stream"
}

// ValidateMediaFile checks size and content type for an upload. Videos are
// accepted for project media only.
func ValidateMediaFile(filename string, size int64, contentType string, allowVideo bool, maxSize int64) error {
	if size <= 0 {
		return apperr.Newf(apperr.KindValidation, "%s is empty", filename)
	}
	if size > maxSize {
		return apperr.Newf(apperr.KindValidation, "%s exceeds the maximum file size", filename)
	}

	ct := ResolveContentType(filename, contentType)
	if allowedImageTypes[ct] {
		return nil
	}
	if allowVideo && strings.HasPrefix(ct, "video/") {
		return nil
	}
	return apperr.Newf(apperr.KindValidation, "%s has an unsupported file type", filename)
}
