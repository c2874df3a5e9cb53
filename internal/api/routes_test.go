package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenamePatternMatchesStillAndAnimated(t *testing.T) {
	hash := "0123456789abcdef0123456789abcdef01234567"

	m := filenamePattern.FindStringSubmatch(hash + ".png")
	if assert.NotNil(t, m) {
		assert.Equal(t, "", m[1])
		assert.Equal(t, hash, m[2])
		assert.Equal(t, "png", m[3])
	}

	m = filenamePattern.FindStringSubmatch("a_" + hash + ".gif")
	if assert.NotNil(t, m) {
		assert.Equal(t, "a_", m[1])
		assert.Equal(t, "gif", m[3])
	}
}

func TestFilenamePatternRejectsBadExtensionAndShortHash(t *testing.T) {
	assert.Nil(t, filenamePattern.FindStringSubmatch("deadbeef.jpg"))
	assert.Nil(t, filenamePattern.FindStringSubmatch("short.png"))
}

func TestAllowedSizesAndFormatCaps(t *testing.T) {
	for _, s := range []int{128, 256, 512, 1024, 2048} {
		assert.True(t, allowedSizes[s])
	}
	assert.False(t, allowedSizes[127])
	assert.False(t, allowedSizes[2049])

	assert.Equal(t, 2048, formatMaxSize["png"])
	assert.Equal(t, 256, formatMaxSize["gif"])
}
