package services

import (
	"regexp"

	"talentfolio-backend/internal/apperr"
)

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{6,})`),
	}
	vimeoPattern = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
)

// ParseVideoLink extracts a YouTube or Vimeo video id from a share URL.
// Exactly one of the returned ids is non-empty on success.
func ParseVideoLink(rawURL string) (youtubeID, vimeoID string, err error) {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], "", nil
		}
	}
	if m := vimeoPattern.FindStringSubmatch(rawURL); m != nil {
		return "", m[1], nil
	}
	return "", "", apperr.New(apperr.KindValidation, "Unsupported video URL")
}
