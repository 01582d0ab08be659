package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	p := Get("compose")
	assert.Equal(t, 8, p.ComponentX)
	assert.Equal(t, 8, p.ComponentY)

	unknown := Get("does-not-exist")
	assert.Equal(t, "does-not-exist", unknown.Name)
	assert.Equal(t, Get(DefaultName).ComponentX, unknown.ComponentX)
	assert.False(t, Exists("does-not-exist"))
}

func TestProfilesHaveValidGrids(t *testing.T) {
	for _, name := range Names() {
		p := Get(name)
		assert.True(t, p.ComponentX >= 1 && p.ComponentX <= 9, name)
		assert.True(t, p.ComponentY >= 1 && p.ComponentY <= 9, name)
		assert.Greater(t, p.Punch, 0.0, name)
	}
}

func TestPlaceholderSize(t *testing.T) {
	w, h := Get("compose").PlaceholderSize(16.0 / 9)
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	w, h = Get("balanced").PlaceholderSize(2)
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)

	w, h = Profile{}.PlaceholderSize(0)
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}
