package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	name := ObjectName("products", "image/png", now)
	assert.True(t, strings.HasPrefix(name, "images/products/"))
	assert.True(t, strings.HasSuffix(name, "-20250301103000.png"))

	// traversal is flattened into the images prefix
	name = ObjectName("../../secrets", "image/jpeg", now)
	assert.True(t, strings.HasPrefix(name, "images/secrets/"))

	name = ObjectName("", "text/plain", now)
	assert.True(t, strings.HasPrefix(name, "images/misc/"))
	assert.True(t, strings.HasSuffix(name, ".bin"))
}

func TestAllowedImageType(t *testing.T) {
	assert.True(t, AllowedImageType("image/webp"))
	assert.False(t, AllowedImageType("application/pdf"))
}
