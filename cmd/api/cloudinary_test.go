package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/profile_pictures/abc.jpg", "profile_pictures/abc"},
		{"https://res.cloudinary.com/demo/image/upload/places/5b1e.webp", "places/5b1e"},
		{"https://res.cloudinary.com/demo/image/upload/v2/places/nested/img.tar.png", "places/nested/img.tar"},
		{"https://res.cloudinary.com/demo/image/upload/videos/clip", "videos/clip"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := extractPublicIDFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPublicIDFromURL_Invalid(t *testing.T) {
	for _, raw := range []string{
		"https://example.com/images/abc.jpg",
		"https://res.cloudinary.com/demo/image/upload/",
		"://bad",
	} {
		_, err := extractPublicIDFromURL(raw)
		assert.Error(t, err, raw)
	}
}
