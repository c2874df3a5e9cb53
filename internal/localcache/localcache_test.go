package localcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupMissThenRememberThenHit(t *testing.T) {
	c := New()

	_, _, found := c.Lookup("u1:deadbeef:png:256")
	assert.False(t, found)

	c.Remember("u1:deadbeef:png:256", "/uploads/avatars/u1/deadbeef.png", true)

	path, exists, found := c.Lookup("u1:deadbeef:png:256")
	assert.True(t, found)
	assert.True(t, exists)
	assert.Equal(t, "/uploads/avatars/u1/deadbeef.png", path)
}

func TestRememberNonExistent(t *testing.T) {
	c := New()
	c.Remember("missing:key", "", false)

	_, exists, found := c.Lookup("missing:key")
	assert.True(t, found)
	assert.False(t, exists)
}
