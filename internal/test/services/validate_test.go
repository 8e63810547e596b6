package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/services"
)

func TestValidateMediaFile_AcceptsImages(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		err := services.ValidateMediaFile("photo.jpg", 1024, ct, false, services.MaxMediaFileSize)
		assert.NoError(t, err, ct)
	}
}

func TestValidateMediaFile_RejectsUnsupportedType(t *testing.T) {
	err := services.ValidateMediaFile("doc.pdf", 1024, "application/pdf", true, services.MaxMediaFileSize)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestValidateMediaFile_VideoOnlyWhenAllowed(t *testing.T) {
	err := services.ValidateMediaFile("clip.mp4", 1024, "video/mp4", true, services.MaxMediaFileSize)
	assert.NoError(t, err)

	err = services.ValidateMediaFile("clip.mp4", 1024, "video/mp4", false, services.MaxProfileImageSize)
	assert.Error(t, err)
}

func TestValidateMediaFile_RejectsOversize(t *testing.T) {
	err := services.ValidateMediaFile("big.jpg", services.MaxMediaFileSize+1, "image/jpeg", true, services.MaxMediaFileSize)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "maximum file size")
}

func TestValidateMediaFile_RejectsEmpty(t *testing.T) {
	err := services.ValidateMediaFile("empty.jpg", 0, "image/jpeg", true, services.MaxMediaFileSize)
	assert.Error(t, err)
}

func TestResolveContentType_PrefersDeclared(t *testing.T) {
	assert.Equal(t, "image/png", services.ResolveContentType("file.jpg", "image/png"))
}

func TestResolveContentType_FallsBackToExtension(t *testing.T) {
	assert.Equal(t, "image/jpeg", services.ResolveContentType("photo.jpg", ""))
	assert.Equal(t, "image/png", services.ResolveContentType("photo.png", "application/octet-stream"))
}

func TestResolveContentType_StripsParameters(t *testing.T) {
	assert.Equal(t, "image/jpeg", services.ResolveContentType("photo.jpg", "image/jpeg; charset=binary"))
}

func TestResolveContentType_UnknownDefaults(t *testing.T) {
	assert.Equal(t, "application/octet-stream", services.ResolveContentType("mystery", ""))
}
