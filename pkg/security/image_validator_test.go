package security_test

import (
	"testing"

	"peer-backend/pkg/security"

	"github.com/stretchr/testify/assert"
)

var (
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	gifHeader  = []byte("GIF89a\x00\x00")
)

func TestValidateImage(t *testing.T) {
	t.Run("accepts a valid png", func(t *testing.T) {
		result := security.ValidateImage("avatar.png", pngHeader, "image/png")
		assert.True(t, result.Valid)
	})

	t.Run("accepts jpeg and gif", func(t *testing.T) {
		assert.True(t, security.ValidateImage("photo.jpg", jpegHeader, "image/jpeg").Valid)
		assert.True(t, security.ValidateImage("anim.gif", gifHeader, "image/gif").Valid)
	})

	t.Run("rejects files over the size limit", func(t *testing.T) {
		big := make([]byte, security.MaxPhotoBytes+1)
		copy(big, pngHeader)
		result := security.ValidateImage("big.png", big, "image/png")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "5MB")
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		result := security.ValidateImage("script.svg", pngHeader, "image/svg+xml")
		assert.False(t, result.Valid)
	})

	t.Run("rejects extension spoofing via magic bytes", func(t *testing.T) {
		// PE header dressed up as a png
		exe := []byte{0x4D, 0x5A, 0x90, 0x00, 0x03, 0x00, 0x00, 0x00}
		result := security.ValidateImage("malware.png", exe, "application/octet-stream")
		assert.False(t, result.Valid)
	})

	t.Run("rejects MIME mismatch", func(t *testing.T) {
		result := security.ValidateImage("page.png", pngHeader, "text/html")
		assert.False(t, result.Valid)
	})
}

func TestValidateImageExtension(t *testing.T) {
	assert.NoError(t, security.ValidateImageExtension("a.jpeg"))
	assert.NoError(t, security.ValidateImageExtension("A.JPG"))
	assert.Error(t, security.ValidateImageExtension("a.pdf"))
	assert.Error(t, security.ValidateImageExtension("noext"))
}
