package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/models"
)

func imageWithURL(url string, sortOrder int) models.Image {
	return models.Image{ID: uuid.New(), URL: url, SortOrder: sortOrder}
}

func TestResolveThumbnail_MatchesByFilenameWithVideoInBatch(t *testing.T) {
	// A video earlier in the batch produces no image row; the requested
	// filename must still land on its own image.
	images := []models.Image{
		imageWithURL("https://cdn.test/u/p/image-111.jpg", 0),
		imageWithURL("https://cdn.test/u/p/image-222.jpg", 1),
	}
	byName := map[string]string{
		"a.jpg": images[0].URL,
		"b.jpg": images[1].URL,
	}

	assert.Equal(t, images[0].URL, resolveThumbnail("a.jpg", byName, images))
	assert.Equal(t, images[1].URL, resolveThumbnail("b.jpg", byName, images))
}

func TestResolveThumbnail_VideoFilenameFallsBackToFirstImage(t *testing.T) {
	images := []models.Image{
		imageWithURL("https://cdn.test/u/p/image-111.jpg", 0),
	}
	byName := map[string]string{"a.jpg": images[0].URL}

	// clip.mp4 stored no image, so the first image wins.
	assert.Equal(t, images[0].URL, resolveThumbnail("clip.mp4", byName, images))
}

func TestResolveThumbnail_DefaultsToFirstImage(t *testing.T) {
	images := []models.Image{
		imageWithURL("https://cdn.test/u/p/image-111.jpg", 0),
		imageWithURL("https://cdn.test/u/p/image-222.jpg", 1),
	}
	byName := map[string]string{"a.jpg": images[0].URL, "b.jpg": images[1].URL}

	assert.Equal(t, images[0].URL, resolveThumbnail("", byName, images))
}

func TestResolveThumbnail_NoImages(t *testing.T) {
	assert.Equal(t, "", resolveThumbnail("a.jpg", map[string]string{}, nil))
}
