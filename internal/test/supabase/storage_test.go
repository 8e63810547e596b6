package supabase_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/supabase"
)

func TestMediaPath_Format(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	path := supabase.MediaPath(userID, projectID, supabase.MediaKindImage, "shot.jpg")

	assert.True(t, strings.HasPrefix(path, userID.String()+"/"+projectID.String()+"/"))
	assert.Contains(t, path, "image-")
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}

func TestMediaPath_KeepsExtensionOnly(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	path := supabase.MediaPath(userID, projectID, supabase.MediaKindVideo, "my holiday video.mp4")

	// The original name never reaches storage, only its extension.
	assert.NotContains(t, path, "holiday")
	assert.True(t, strings.HasSuffix(path, ".mp4"))
}

func TestMediaPath_Unique(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	a := supabase.MediaPath(userID, projectID, supabase.MediaKindImage, "same.jpg")
	b := supabase.MediaPath(userID, projectID, supabase.MediaKindImage, "same.jpg")

	assert.NotEqual(t, a, b)
}

func TestProfileImagePath_Format(t *testing.T) {
	userID := uuid.New()

	path := supabase.ProfileImagePath(userID, "avatar", "me.png")

	assert.True(t, strings.HasPrefix(path, userID.String()+"/"))
	assert.Contains(t, path, "avatar-")
	assert.True(t, strings.HasSuffix(path, ".png"))
}
