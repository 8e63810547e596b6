package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/services"
)

func TestParseVideoLink_YouTube(t *testing.T) {
	cases := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://youtube.com/shorts/dQw4w9WgXcQ",
	}
	for _, url := range cases {
		youtubeID, vimeoID, err := services.ParseVideoLink(url)
		assert.NoError(t, err, url)
		assert.Equal(t, "dQw4w9WgXcQ", youtubeID, url)
		assert.Empty(t, vimeoID, url)
	}
}

func TestParseVideoLink_Vimeo(t *testing.T) {
	for _, url := range []string{
		"https://vimeo.com/123456789",
		"https://vimeo.com/video/123456789",
	} {
		youtubeID, vimeoID, err := services.ParseVideoLink(url)
		assert.NoError(t, err, url)
		assert.Empty(t, youtubeID, url)
		assert.Equal(t, "123456789", vimeoID, url)
	}
}

func TestParseVideoLink_Unsupported(t *testing.T) {
	for _, url := range []string{
		"https://example.com/watch?v=abc",
		"https://dailymotion.com/video/x123",
		"not a url at all",
	} {
		_, _, err := services.ParseVideoLink(url)
		assert.Error(t, err, url)
	}
}
