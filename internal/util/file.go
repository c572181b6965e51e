package util

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// ValidateMimeType sniffs the real MIME type of an upload.
// allowedTypes are MIME prefixes or full types, e.g. "video/",
// "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}

var youtubeIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|embed/|shorts/)([A-Za-z0-9_-]{11})`)

// ExtractYouTubeID pulls the 11-character video id out of any of the usual
// YouTube URL shapes. Returns an empty string when none is found.
func ExtractYouTubeID(rawURL string) string {
	if m := youtubeIDPattern.FindStringSubmatch(rawURL); len(m) == 2 {
		return m[1]
	}
	return ""
}
