package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "businesses/b1/u1.jpg", ObjectName("b1", "u1", "Photo.JPG"))
	assert.Equal(t, "businesses/b1/u1.webp", ObjectName("b1", "u1", "x.webp"))
	assert.Equal(t, "businesses/b1/u1", ObjectName("b1", "u1", "script.sh"))
}

func TestPublicURL(t *testing.T) {
	g := &GCS{bucket: "hub-photos", baseURL: "https://storage.googleapis.com"}
	assert.Equal(t, "https://storage.googleapis.com/hub-photos/businesses/b%201/u1.png", g.publicURL("businesses/b 1/u1.png"))
}
