package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://example.com/video.mp4", ""},
		{"not a url", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractYouTubeID(tt.url), tt.url)
	}
}

func TestValidateMimeType(t *testing.T) {
	pdf := strings.NewReader("%PDF-1.7 some content here")
	mime, err := ValidateMimeType(pdf, []string{MimePDF})
	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	text := strings.NewReader("just plain text, nothing else")
	_, err = ValidateMimeType(text, []string{MimeVideo})
	assert.Error(t, err)
}

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("video/mp4"))
	assert.True(t, IsVideo("application/x-mpegURL"))
	assert.False(t, IsVideo("application/pdf"))
}
